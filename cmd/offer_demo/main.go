package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"offerwise/internal/ai"
	"offerwise/internal/modules/evaluator"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	capture := "$18.50 total, 2 orders, 12.3 mi, 45 items"
	if len(os.Args) > 1 {
		capture = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	fmt.Printf("Capture: %s\n", capture)

	extract, err := provider.ParseOfferText(ctx, capture)
	if err != nil {
		log.Fatalf("Error parsing offer: %v", err)
	}

	if extract.Pay != nil {
		fmt.Printf("Pay: $%.2f\n", *extract.Pay)
	}
	if extract.Miles != nil {
		fmt.Printf("Miles: %.1f\n", *extract.Miles)
	}
	if extract.Items != nil {
		fmt.Printf("Items: %d\n", *extract.Items)
	}
	if extract.Note != "" {
		fmt.Printf("Note: %s\n", extract.Note)
	}

	if extract.Pay == nil || *extract.Pay <= 0 {
		fmt.Println("No pay amount found; nothing to evaluate.")
		return
	}

	ev, err := evaluator.EvaluateOffer(extract.ToOffer(), evaluator.DefaultSettings)
	if err != nil {
		log.Fatalf("Error evaluating offer: %v", err)
	}
	fmt.Println(ev.Summary)
}
