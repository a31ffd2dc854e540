package utils

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"chatter around", "Here is your plan: {\"a\":{\"b\":\"}\"}} hope it helps", `{"a":{"b":"}"}}`},
		{"array", "noise [1,[2,3]] tail", `[1,[2,3]]`},
		{"not json", "sorry, I cannot help", "sorry, I cannot help"},
		{"bracketed chatter first", "Sure {here it is}:\n{\"a\":[1,2]}", `{"a":[1,2]}`},
		{"bracketed list chatter first", "Options [see below]: {\"a\":1}", `{"a":1}`},
		{"no valid candidate", "oops {not json} end", "{not json}"},
		{"truncated object", `{"a":{"b":1}`, `{"a":{"b":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanJSONResponse(tc.in); got != tc.want {
				t.Errorf("CleanJSONResponse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
