// Package session holds the per-learner state machine: which screen is
// shown, the selected scenario and prompt, the answers given so far and
// the practice log. A Controller owns one State and moves it between
// screens in response to Actions; presentation layers only render
// snapshots and dispatch actions.
package session
