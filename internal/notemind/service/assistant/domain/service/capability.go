package service

import (
	"fmt"
	"strings"
)

// ExampleRequests are shown to users who ask what the assistant can do.
var ExampleRequests = []string{
	"List my notes",
	"Read meeting.txt",
	"Analyze my CV and summarise it",
	"Show me my todo list",
	"What notes do I have?",
	"What are my action items?",
	"Show my upcoming calendar events",
	"Create a meeting for tomorrow at 2pm",
	"Schedule a team meeting next week",
	"What's on my calendar this week?",
}

// CapabilityListing answers meta questions about the available tools.
func CapabilityListing(catalog string) string {
	return "Here are the available tools:\n\n" + catalog
}

// GeneralHelp is the reply when no tool applies to a request.
func GeneralHelp(catalog string) string {
	var b strings.Builder
	b.WriteString("I can help you with your notes and calendar! Here's what I can do:\n\n")
	b.WriteString(catalog)
	b.WriteString("\n\nTry asking me to:\n")
	for i, ex := range ExampleRequests {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %q", ex)
	}
	return b.String()
}

// containsAny reports whether text contains any keyword, ignoring case.
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
