package guidestore

import "explora/internal/utils"

func newSectionID(title string) string {
	return utils.NewID("sec", title)
}

func newQuestionID(text string) string {
	return utils.NewID("q", text)
}
