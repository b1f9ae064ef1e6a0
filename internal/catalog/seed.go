package catalog

// seedScenarios is the reference data set, in display order.
var seedScenarios = []Scenario{
	{
		ID:                  "small_talk",
		Title:               "Small Talk mit Kollegen",
		TitleSecondary:      "Small Talk with Colleagues",
		Context:             "Sie sind in der Kaffeepause. Ein Kollege spricht Sie an...",
		ContextSecondary:    "You are on a coffee break. A colleague starts talking to you...",
		Difficulty:          "Anfänger",
		DifficultySecondary: "Beginner",
		Formality:           "Du",
		Icon:                "☕",
		Prompts: []Prompt{
			{Text: "Wie war dein Wochenende?", Translation: "How was your weekend?"},
			{Text: "Hast du etwas Schönes gemacht?", Translation: "Did you do anything nice?"},
		},
	},
	{
		ID:                  "explain_task",
		Title:               "Aufgabe erklären",
		TitleSecondary:      "Explain a Task",
		Context:             "Ihr Teamkollege fragt Sie nach den Details eines Projekts...",
		ContextSecondary:    "Your teammate asks you about the details of a project...",
		Difficulty:          "Fortgeschritten",
		DifficultySecondary: "Intermediate",
		Formality:           "Sie",
		Icon:                "📋",
		Prompts: []Prompt{
			{Text: "Können Sie mir erklären, wie dieser Prozess funktioniert?", Translation: "Can you explain to me how this process works?"},
			{Text: "Welche Schritte sind am wichtigsten?", Translation: "Which steps are the most important?"},
		},
	},
	{
		ID:                  "answer_question",
		Title:               "Frage beantworten",
		TitleSecondary:      "Answer a Question",
		Context:             "Ihr Manager fragt Sie nach dem Status Ihrer Arbeit...",
		ContextSecondary:    "Your manager asks you about the status of your work...",
		Difficulty:          "Fortgeschritten",
		DifficultySecondary: "Intermediate",
		Formality:           "Sie",
		Icon:                "💼",
		Prompts: []Prompt{
			{Text: "Wie läuft das Projekt?", Translation: "How is the project going?"},
			{Text: "Gibt es irgendwelche Probleme?", Translation: "Are there any problems?"},
		},
	},
	{
		ID:                  "ask_help",
		Title:               "Um Hilfe bitten",
		TitleSecondary:      "Ask for Help",
		Context:             "Sie brauchen Unterstützung von einem Kollegen...",
		ContextSecondary:    "You need support from a colleague...",
		Difficulty:          "Anfänger",
		DifficultySecondary: "Beginner",
		Formality:           "Du/Sie",
		Icon:                "🤝",
		Prompts: []Prompt{
			{Text: "Kannst du mir kurz helfen?", Translation: "Can you help me for a moment?"},
			{Text: "Womit brauchst du Hilfe?", Translation: "What do you need help with?"},
		},
	},
	{
		ID:                  "introduce",
		Title:               "Sich vorstellen",
		TitleSecondary:      "Introduce Yourself",
		Context:             "Es ist Ihr erster Tag im neuen Büro. Sie treffen Ihr Team...",
		ContextSecondary:    "It is your first day at the new office. You meet your team...",
		Difficulty:          "Anfänger",
		DifficultySecondary: "Beginner",
		Formality:           "Sie",
		Icon:                "👋",
		Prompts: []Prompt{
			{Text: "Hallo! Wie heißen Sie?", Translation: "Hello! What is your name?"},
			{Text: "Was ist Ihre Rolle hier?", Translation: "What is your role here?"},
		},
	},
}
