package nlp

import "strings"

// Fallback single-keyword checks, tried in order when no pattern scores.
var fallbackChecks = []struct {
	intent   Intent
	keywords []string
}{
	{IntentGreeting, []string{"chào", "hello", "hi", "xin chào"}},
	{IntentThanks, []string{"cảm ơn", "thanks", "thank you"}},
	{IntentHelp, []string{"giúp", "help", "hỗ trợ"}},
}

// Classify scores normalized text against the pattern table and returns the
// best intent. Ties go to the intent listed first in the table. It is total:
// any input, including the empty string, yields a valid classification.
func Classify(text string) Classification {
	var best Classification
	bestScore := 0.0

	for _, entry := range intentTable {
		score := 0.0
		for _, re := range entry.patterns {
			if re.MatchString(text) {
				score++
			}
		}
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				score += 0.5
			}
		}
		if score > bestScore {
			bestScore = score
			best = Classification{
				Intent:     entry.intent,
				Confidence: confidence(score),
				Method:     MethodPatternScoring,
			}
		}
	}

	if bestScore > 0 {
		return best
	}
	return fallbackClassification(text)
}

func confidence(score float64) float64 {
	c := 0.7 + score*0.1
	if c > 0.95 {
		c = 0.95
	}
	return c
}

func fallbackClassification(text string) Classification {
	for _, check := range fallbackChecks {
		for _, kw := range check.keywords {
			if strings.Contains(text, kw) {
				return Classification{Intent: check.intent, Confidence: 0.8, Method: MethodFallback}
			}
		}
	}
	return Classification{Intent: IntentConversation, Confidence: 0.5, Method: MethodFallback}
}
