package core

import (
	"errors"
	"testing"
)

func TestMessageValidate(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want error
	}{
		{"text only", Message{Username: "alice", Text: "hi"}, nil},
		{"file only", Message{Username: "alice", FileURL: "/uploads/1-a.png", FileName: "a.png"}, nil},
		{"text and file", Message{Username: "alice", Text: "hi", FileURL: "/uploads/1-a.png", FileName: "a.png"}, nil},
		{"no username", Message{Text: "hi"}, ErrEmptyUsername},
		{"empty", Message{Username: "alice"}, ErrEmptyMessage},
		{"url without name", Message{Username: "alice", FileURL: "/uploads/1-a.png"}, ErrIncompleteAttachment},
		{"name without url", Message{Username: "alice", FileName: "a.png"}, ErrIncompleteAttachment},
		{"text with dangling url", Message{Username: "alice", Text: "hi", FileURL: "/uploads/1-a.png"}, ErrIncompleteAttachment},
		{"text with dangling name", Message{Username: "alice", Text: "hi", FileName: "a.png"}, ErrIncompleteAttachment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.msg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}
