package quiz

// Score counts the questions whose recorded answer equals the
// designated correct option. Unanswered indices never score; answer
// indices outside the question range are ignored.
func Score(questions []Question, answers map[int]string) int {
	score := 0
	for i, q := range questions {
		if picked, ok := answers[i]; ok && picked == q.Answer {
			score++
		}
	}
	return score
}
