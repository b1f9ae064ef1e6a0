// Package feedback asks the tutor model to assess one learner answer and
// turns the reply into a Record. Request never fails: any transport or
// parsing problem yields the canned Fallback record.
package feedback

// Record is the tutor's assessment of one answer.
type Record struct {
	// RelevanceScore is expected in 1..5 but is not clamped.
	RelevanceScore    float64  `json:"relevance_score"`
	Transcript        string   `json:"transcript"`
	WhatWorked        []string `json:"what_worked"`
	Improvement       string   `json:"improvement"`
	SuggestedResponse string   `json:"suggested_response"`
	ScoreExplanation  string   `json:"score_explanation"`
}

// Turn is one answered prompt of the current scenario.
type Turn struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// Fallback is the record shown when no usable reply came back. The
// transcript echoes what the learner typed.
func Fallback(response string) Record {
	return Record{
		RelevanceScore:    3,
		Transcript:        response,
		WhatWorked:        []string{"Sie haben geantwortet"},
		Improvement:       "Versuchen Sie, mehr Details hinzuzufügen",
		SuggestedResponse: "Eine natürlichere Antwort wäre hilfreich",
		ScoreExplanation:  "Feedback wird generiert...",
	}
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	r.WhatWorked = append([]string(nil), r.WhatWorked...)
	return r
}
