package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"propfinder/internal/model"
)

// stubAIClient lets tests drive the delegated tier without a network.
type stubAIClient struct {
	enabled  bool
	response *AIIntentResponse
	err      error
}

func (s *stubAIClient) ParseIntent(ctx context.Context, text string) (*AIIntentResponse, error) {
	return s.response, s.err
}

func (s *stubAIClient) IsEnabled() bool { return s.enabled }

func TestHeuristicExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.FilterResult
	}{
		{
			name: "full search query",
			text: "3 bedroom under 500000 in Austin with a pool",
			want: model.FilterResult{
				Location:    strPtr("Austin"),
				MinBedrooms: intPtr(3),
				MaxPrice:    floatPtr(500000),
				Amenities:   []string{"pool"},
			},
		},
		{
			name: "city alias",
			text: "looking for a condo in sf",
			want: model.FilterResult{Location: strPtr("San Francisco")},
		},
		{
			name: "bedroom words without a number default to 2",
			text: "a house with bedrooms in miami",
			want: model.FilterResult{Location: strPtr("Miami"), MinBedrooms: intPtr(2)},
		},
		{
			name: "min and max price fire independently",
			text: "between, say, over 300000 and under 600000",
			want: model.FilterResult{MinPrice: floatPtr(300000), MaxPrice: floatPtr(600000)},
		},
		{
			name: "amenities in fixed order",
			text: "needs a gym, a pool and a garage",
			want: model.FilterResult{Amenities: []string{"pool", "garage", "gym"}},
		},
		{
			name: "fitness maps to gym",
			text: "somewhere with a fitness center",
			want: model.FilterResult{Amenities: []string{"gym"}},
		},
		{
			name: "keyword location guess takes up to three words",
			text: "something nice near cedar creek east shore",
			want: model.FilterResult{Location: strPtr("Cedar Creek East")},
		},
		{
			name: "nothing recognized",
			text: "hello",
			want: model.FilterResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeuristicExtract(tt.text)
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("HeuristicExtract(%q) = %+v, want %+v", tt.text, *got, tt.want)
			}
		})
	}
}

func TestHeuristicExtractDeterministic(t *testing.T) {
	text := "2 bed in Boston under 800000 with garage"
	first := HeuristicExtract(text)
	for i := 0; i < 5; i++ {
		if got := HeuristicExtract(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %+v, first run produced %+v", i, got, first)
		}
	}
}

func TestIntentParserFallbackWithoutAI(t *testing.T) {
	parser := NewIntentParser(nil)

	result := parser.Parse(context.Background(), "3 bedroom under 500000 in Austin with a pool")

	if result.Provider != model.ProviderFallback {
		t.Fatalf("provider = %q, want %q", result.Provider, model.ProviderFallback)
	}
	if result.Filters == nil {
		t.Fatal("expected searchable filters")
	}
	if result.Filters.Location == nil || *result.Filters.Location != "Austin" {
		t.Errorf("location = %v, want Austin", result.Filters.Location)
	}
	if result.Filters.MinBedrooms == nil || *result.Filters.MinBedrooms != 3 {
		t.Errorf("min_bedrooms = %v, want 3", result.Filters.MinBedrooms)
	}
	if result.Filters.MaxPrice == nil || *result.Filters.MaxPrice != 500000 {
		t.Errorf("max_price = %v, want 500000", result.Filters.MaxPrice)
	}
}

func TestIntentParserConversationalFallback(t *testing.T) {
	parser := NewIntentParser(nil)

	result := parser.Parse(context.Background(), "hello")

	if result.Provider != model.ProviderFallback {
		t.Fatalf("provider = %q, want %q", result.Provider, model.ProviderFallback)
	}
	if result.Filters != nil {
		t.Errorf("expected no filters, got %+v", result.Filters)
	}
	if result.Text == "" {
		t.Error("expected a conversational reply")
	}
}

func TestIntentParserDelegatedTier(t *testing.T) {
	t.Run("searchable filters pass through", func(t *testing.T) {
		client := &stubAIClient{
			enabled: true,
			response: &AIIntentResponse{
				Filters: &model.FilterResult{Location: strPtr("Miami")},
				Text:    "Here are homes in Miami.",
			},
		}
		parser := NewIntentParser(client)

		result := parser.Parse(context.Background(), "homes in miami")

		if result.Provider != model.ProviderOpenAI {
			t.Fatalf("provider = %q, want %q", result.Provider, model.ProviderOpenAI)
		}
		if result.Filters == nil || *result.Filters.Location != "Miami" {
			t.Errorf("filters = %+v, want location Miami", result.Filters)
		}
		if result.Text != "Here are homes in Miami." {
			t.Errorf("text = %q, want verbatim reply", result.Text)
		}
	})

	t.Run("unsearchable filters are dropped", func(t *testing.T) {
		client := &stubAIClient{
			enabled: true,
			response: &AIIntentResponse{
				Filters: &model.FilterResult{},
				Text:    "Tell me more about what you need.",
			},
		}
		parser := NewIntentParser(client)

		result := parser.Parse(context.Background(), "hmm")

		if result.Provider != model.ProviderOpenAI {
			t.Fatalf("provider = %q, want %q", result.Provider, model.ProviderOpenAI)
		}
		if result.Filters != nil {
			t.Errorf("empty filters should be dropped, got %+v", result.Filters)
		}
		if result.Text == "" {
			t.Error("expected the conversational reply to survive")
		}
	})

	t.Run("failure falls through to the heuristic", func(t *testing.T) {
		client := &stubAIClient{enabled: true, err: errors.New("boom")}
		parser := NewIntentParser(client)

		result := parser.Parse(context.Background(), "2 bedroom in Chicago")

		if result.Provider != model.ProviderFallback {
			t.Fatalf("provider = %q, want %q", result.Provider, model.ProviderFallback)
		}
		if result.Filters == nil || result.Filters.Location == nil || *result.Filters.Location != "Chicago" {
			t.Errorf("expected heuristic filters for Chicago, got %+v", result.Filters)
		}
	})

	t.Run("disabled client skips the delegated tier", func(t *testing.T) {
		client := &stubAIClient{enabled: false, response: &AIIntentResponse{Text: "never seen"}}
		parser := NewIntentParser(client)

		result := parser.Parse(context.Background(), "hello")

		if result.Provider != model.ProviderFallback {
			t.Fatalf("provider = %q, want %q", result.Provider, model.ProviderFallback)
		}
	})
}

func strPtr(s string) *string { return &s }
