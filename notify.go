package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Notifier posts newly created entries to an external echo endpoint.
// The call is made once, synchronously, with no retry; deciding what a
// failure means is up to the caller.
type Notifier struct {
	url    string
	client *http.Client
}

func NewNotifier(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: http.DefaultClient,
	}
}

type notifyPayload struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (n *Notifier) Notify(entry Entry) error {
	body, err := json.Marshal(notifyPayload{
		ID:    entry.ID,
		Title: entry.Title,
		Text:  entry.Text,
	})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to %s: %w", n.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("posting to %s: unexpected status %s", n.url, resp.Status)
	}

	return nil
}
