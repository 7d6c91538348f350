package assistant

import "testing"

func TestParseReplyDirect(t *testing.T) {
	reply, err := ParseReply(`{"answer": "Visit Dagadusheth.", "suggestions": [1, 3]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if reply.Answer != "Visit Dagadusheth." {
		t.Errorf("answer = %q", reply.Answer)
	}
	if len(reply.Suggestions) != 2 || reply.Suggestions[0] != 1 || reply.Suggestions[1] != 3 {
		t.Errorf("suggestions = %v", reply.Suggestions)
	}
}

func TestParseReplyWithSurroundingText(t *testing.T) {
	text := `Here is my answer:
{"answer": "The nearest Jain temple is in Pune.", "suggestions": [2]}
Hope that helps!`
	reply, err := ParseReply(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(reply.Suggestions) != 1 || reply.Suggestions[0] != 2 {
		t.Errorf("suggestions = %v", reply.Suggestions)
	}
}

func TestParseReplyCodeBlock(t *testing.T) {
	text := "```json\n{\"answer\": \"No temples in range.\", \"suggestions\": []}\n```"
	reply, err := ParseReply(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if reply.Answer != "No temples in range." {
		t.Errorf("answer = %q", reply.Answer)
	}
	if len(reply.Suggestions) != 0 {
		t.Errorf("suggestions = %v", reply.Suggestions)
	}
}

func TestParseReplyGarbage(t *testing.T) {
	if _, err := ParseReply("I am not JSON at all"); err == nil {
		t.Error("expected error for unparseable reply")
	}
}
