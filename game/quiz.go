// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import "github.com/danielhkuo/click-experiment/models"

type Choice int

const (
	ChoiceA Choice = iota
	ChoiceB
)

// Weights are the points one answer adds to each team.
type Weights struct {
	Inside  int
	Outside int
}

// Question holds the weights of a two-option question. The wording is
// left to the caller.
type Question struct {
	A Weights
	B Weights
}

// TeamQuiz accumulates answers and assigns a team once every question
// is answered. Ties go to inside.
type TeamQuiz struct {
	questions    []Question
	index        int
	insideScore  int
	outsideScore int
}

func NewTeamQuiz(questions []Question) *TeamQuiz {
	return &TeamQuiz{questions: questions}
}

// Answer scores choice for the current question and advances. It returns
// the assigned team and true once the last question is answered; later
// calls change nothing.
func (q *TeamQuiz) Answer(choice Choice) (string, bool) {
	if q.Done() {
		return q.Result(), true
	}

	w := q.questions[q.index].A
	if choice == ChoiceB {
		w = q.questions[q.index].B
	}
	q.insideScore += w.Inside
	q.outsideScore += w.Outside
	q.index++

	if q.Done() {
		return q.Result(), true
	}
	return "", false
}

// Current returns the index of the next unanswered question.
func (q *TeamQuiz) Current() int {
	return q.index
}

func (q *TeamQuiz) Done() bool {
	return q.index >= len(q.questions)
}

// Result is the team the answers so far point to.
func (q *TeamQuiz) Result() string {
	if q.insideScore >= q.outsideScore {
		return models.TeamInside
	}
	return models.TeamOutside
}

func (q *TeamQuiz) Scores() (inside, outside int) {
	return q.insideScore, q.outsideScore
}
