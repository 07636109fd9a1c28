package apiclient

import "context"

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	payload := map[string]string{"username": username, "email": email, "password": password}
	return c.postJSON(ctx, "/api/register", payload, nil)
}

// Login starts a session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload := map[string]string{"username": username, "password": password}
	return c.postJSON(ctx, "/api/login", payload, nil)
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/api/logout", struct{}{}, nil)
}

// Me fetches the logged-in profile.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.get(ctx, "/api/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ask sends a tutoring question.
func (c *Client) Ask(ctx context.Context, question, subject string) (*AskResponse, error) {
	payload := map[string]string{"question": question, "subject": subject}
	var out AskResponse
	if err := c.postJSON(ctx, "/api/ask", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateNotes requests markdown study notes.
func (c *Client) GenerateNotes(ctx context.Context, subject, topic string) (*NotesResponse, error) {
	payload := map[string]string{"subject": subject, "topic": topic}
	var out NotesResponse
	if err := c.postJSON(ctx, "/api/generate-notes", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateQuiz requests a multiple-choice quiz.
func (c *Client) GenerateQuiz(ctx context.Context, subject, topic string) (*QuizResponse, error) {
	payload := map[string]string{"subject": subject, "topic": topic}
	var out QuizResponse
	if err := c.postJSON(ctx, "/api/generate-quiz", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VisionAsk uploads an image for visual Q&A.
func (c *Client) VisionAsk(ctx context.Context, filename string, image []byte, question string) (*AnswerResponse, error) {
	files := []filePart{{Field: "image", Filename: filename, Data: image}}
	fields := map[string]string{}
	if question != "" {
		fields["question"] = question
	}
	var out AnswerResponse
	if err := c.postMultipart(ctx, "/api/vision-ask", files, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PDFChat uploads a PDF and asks a question about it.
func (c *Client) PDFChat(ctx context.Context, filename string, doc []byte, question string) (*AnswerResponse, error) {
	files := []filePart{{Field: "pdf", Filename: filename, Data: doc}}
	fields := map[string]string{"question": question}
	var out AnswerResponse
	if err := c.postMultipart(ctx, "/api/pdf-chat", files, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadPDF renders generated content into a PDF document.
func (c *Client) DownloadPDF(ctx context.Context, title, content string) ([]byte, error) {
	payload := map[string]string{"title": title, "content": content}
	var raw []byte
	if err := c.postJSON(ctx, "/api/download-pdf", payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// WatchAd claims the ad-view credit reward.
func (c *Client) WatchAd(ctx context.Context) (*WatchAdResponse, error) {
	var out WatchAdResponse
	if err := c.postJSON(ctx, "/api/watch-ad", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitQuizScore reports a finished quiz for an XP reward.
func (c *Client) SubmitQuizScore(ctx context.Context, score, total int, topic string) (*SubmitScoreResponse, error) {
	payload := map[string]interface{}{"score": score, "total": total, "topic": topic}
	var out SubmitScoreResponse
	if err := c.postJSON(ctx, "/api/submit-quiz-score", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analytics fetches the activity summary.
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var out Analytics
	if err := c.get(ctx, "/api/analytics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leaderboard fetches the XP ranking.
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var out []LeaderboardEntry
	if err := c.get(ctx, "/api/leaderboard", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateClass changes the student's class label.
func (c *Client) UpdateClass(ctx context.Context, class string) (*UpdateClassResponse, error) {
	payload := map[string]string{"student_class": class}
	var out UpdateClassResponse
	if err := c.postJSON(ctx, "/api/update-class", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
