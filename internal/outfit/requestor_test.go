package outfit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProposals(t *testing.T) {
	body := "```json\n" + `{"outfits":[{"outfitNumber":1,"name":"A","top":{"id":1},"bottom":{"id":"2"},"shoes":{"id":3},"totalPrice":99.5,"whyItWorks":"w","stylistNotes":["n"],"confidenceScore":0.9}]}` + "\n```"

	proposals, err := ParseProposals(body, 1)

	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, ProductID("1"), proposals[0].Top.ID)
	assert.Equal(t, ProductID("2"), proposals[0].Bottom.ID)
	assert.Equal(t, []string{"n"}, proposals[0].StylistNotes)
	assert.Equal(t, 0.9, proposals[0].ConfidenceScore)
}

func TestParseProposals_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":         "  ",
		"not json":      "Here are your outfits!",
		"missing array": `{"looks":[]}`,
		"null array":    `{"outfits":null}`,
		"short batch":   `{"outfits":[{"name":"A"}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProposals(body, 2)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestRequestor_Request(t *testing.T) {
	pool := poolOf(3)
	var gotOpts CompletionOptions
	var gotPrompt Prompt
	var hadDeadline bool

	completer := CompleterFunc(func(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error) {
		gotPrompt, gotOpts = prompt, opts
		_, hadDeadline = ctx.Deadline()
		return completionBody(t, []Proposal{proposal("top-1", "bottom-1", "shoes-1")}), nil
	})

	r := NewRequestor(completer, 0.8, time.Second)
	proposals, err := r.Request(context.Background(), pool, UserProfile{Occasion: "work"}, nil, 1)

	require.NoError(t, err)
	assert.Len(t, proposals, 1)
	assert.Equal(t, ResponseFormatJSONObject, gotOpts.ResponseFormat)
	assert.Equal(t, 0.8, gotOpts.Temperature)
	assert.True(t, hadDeadline)
	assert.Contains(t, gotPrompt.User, "id=top-1")
}

func TestRequestor_CompletionError(t *testing.T) {
	boom := errors.New("upstream 503")
	r := NewRequestor(CompleterFunc(func(context.Context, Prompt, CompletionOptions) (string, error) {
		return "", boom
	}), 0.8, 0)

	_, err := r.Request(context.Background(), poolOf(1), UserProfile{Occasion: "work"}, nil, 1)

	assert.ErrorIs(t, err, ErrCompletionFailed)
	assert.ErrorIs(t, err, boom)
}

func TestBuildPrompt(t *testing.T) {
	pool := poolOf(2)
	profile := UserProfile{
		Occasion:      "date night",
		PriceRange:    PriceRange{Min: 80, Max: 250},
		StyleKeywords: []string{"minimal", "classic"},
		BodyProfile:   &BodyProfile{BodyType: "athletic", HeightCM: 180},
		ColorStrategy: &ColorStrategy{Primary: []string{"navy"}, Avoid: []string{"orange"}},
	}
	feedback := []Feedback{
		{OutfitName: "Sunday Best", ItemNames: []string{"Oxford Shirt"}, Liked: true, Reason: "great colors"},
		{OutfitName: "Gym Rat", Liked: false},
	}

	prompt := BuildPrompt(pool, profile, feedback, 9)

	assert.NotEmpty(t, prompt.System)
	for _, want := range []string{
		"exactly 9 different outfits",
		`"date night"`,
		"at most once",
		"between $80.00 and $250.00",
		"minimal, classic",
		"Preferred colors: navy",
		"Colors to avoid: orange",
		"body type athletic",
		"180 cm tall",
		"TOPS (2, best match first)",
		"id=shoes-2",
		`LIKED "Sunday Best" (Oxford Shirt): great colors`,
		`DISLIKED "Gym Rat"`,
		`"outfits"`,
	} {
		assert.Contains(t, prompt.User, want)
	}
}

func TestBuildPrompt_Unlimited(t *testing.T) {
	prompt := BuildPrompt(CandidatePool{}, UserProfile{Occasion: "gala", PriceRange: PriceRange{Min: 300, IsUnlimited: true}}, nil, 3)

	assert.Contains(t, prompt.User, "at least $300.00, no upper limit")
	assert.NotContains(t, prompt.User, "Past feedback")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b", truncate("  a \n b ", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
