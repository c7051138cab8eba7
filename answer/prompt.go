package answer

import (
	"fmt"
	"strings"

	"github.com/micronauticals/txnquery/schema"
)

const narrationSampleLimit = 10

// NarrationPrompt builds the text generation prompt for a filtered
// listing: exact statistics over the whole filtered set plus a bounded
// sample of records. A sampleLimit of zero uses the default.
func NarrationPrompt(question string, records []schema.Record, descriptions []string, stats schema.Statistics, sampleLimit int) string {
	filterContext := "No filters"
	if len(descriptions) > 0 {
		filterContext = strings.Join(descriptions, ", ")
	}

	if sampleLimit <= 0 {
		sampleLimit = narrationSampleLimit
	}
	samples := records
	if len(samples) > sampleLimit {
		samples = samples[:sampleLimit]
	}

	var details strings.Builder
	for i, r := range samples {
		narration := r.Narration
		if len(narration) > 50 {
			narration = narration[:50]
		}
		fmt.Fprintf(&details, "Transaction %d: %s (%s), %s, %s, Narration: %s\n",
			i+1, schema.FormatINR(r.Amount), orNA(r.Type), orNA(r.Mode), orNA(r.DateOnly()), orNA(narration))
	}

	return fmt.Sprintf(`You are an intelligent financial assistant. Understand the user's question deeply, then provide a natural, helpful response.

USER QUESTION: %s

TRANSACTION QUERY RESULTS:
Total Matching Transactions: %d
Filters Applied: %s

STATISTICS:
- Total Amount: %s
- Average Amount: %s
- Highest: %s
- Lowest: %s

SAMPLE TRANSACTIONS (showing %d of %d):
%s
INSTRUCTIONS:
1. First, understand what the user is asking (list, summary, analysis, specific details, etc.)
2. Detect the language: Hindi (Devanagari), Hinglish (Roman script with Hindi words), or English
3. Respond in the SAME language style as the question
4. Be conversational, warm, and helpful - don't use robotic templates
5. Provide the information they need naturally
6. If they ask for "all" transactions, mention that detailed list is provided separately
7. Give insights, patterns, or helpful observations when relevant
8. Use emojis moderately for friendliness

YOUR NATURAL RESPONSE:`,
		question, len(records), filterContext,
		schema.FormatINR(stats.Total), schema.FormatINR(stats.Average),
		schema.FormatINR(stats.Max), schema.FormatINR(stats.Min),
		len(samples), len(records), details.String())
}

// AnalyticalPrompt builds the prompt for counting and analytical
// questions. The digest carries exact full-dataset figures, so the
// prompt pins the total count to rule out sample-based answers.
func AnalyticalPrompt(question, digest string, total int) string {
	return fmt.Sprintf(`You are an intelligent financial analyst with access to COMPLETE transaction data.

CRITICAL: You have COMPREHENSIVE statistics and breakdowns from EXACTLY %[1]d transactions.
The statistics (totals, averages, breakdowns by type/mode/month) represent the ENTIRE dataset of %[1]d transactions, not just samples.

LANGUAGE:
- Hindi (Devanagari script) means respond in pure Hindi (Devanagari)
- Hinglish (Roman script with Hindi words like 'mujhe', 'dikhao', 'saari', 'batao', 'kitne') means respond in Hinglish (Roman script)
- English means respond in English

COMPLETE TRANSACTION DATA (ALL %[1]d transactions analyzed):
%[2]s

USER'S QUESTION: %[3]s

YOUR APPROACH:
1. EXACT COUNT: If asked "how many" or "kitne" transactions, the answer is EXACTLY %[1]d
2. You are analyzing ALL %[1]d transactions, not just samples
3. All breakdowns and totals represent the complete dataset
4. Be specific: use exact numbers from the statistics
5. Identify patterns, trends and anomalies across the full dataset
6. Be conversational and match the user's language style
7. The detailed transactions shown are examples; the statistics cover all %[1]d

YOUR INTELLIGENT RESPONSE (analyzing ALL %[1]d transactions):`, total, digest, question)
}

// ContextBlock renders the retrieved records as the context section of
// a generation prompt.
func ContextBlock(records []schema.Record) string {
	blocks := make([]string, len(records))
	for i, r := range records {
		blocks[i] = r.Text()
	}
	return strings.Join(blocks, "\n\n=== TRANSACTION ===\n\n")
}

// ContextPrompt builds the prompt for open-ended questions answered
// from the most similar records.
func ContextPrompt(question, context string) string {
	return fmt.Sprintf(`You are an intelligent financial assistant with expertise in analyzing transaction data.

UNDERSTAND FIRST, THEN RESPOND:
1. Read the user's question and understand their true intent
2. Analyze the transaction data provided in the context
3. Think about what information would be most helpful
4. Respond naturally in the user's language

LANGUAGE:
- Hindi (Devanagari) means respond in Hindi (Devanagari)
- Hinglish (Roman with Hindi words: mujhe, dikhao, saari, batao, kya) means respond in Hinglish (Roman)
- English means respond in English

TRANSACTION CONTEXT (Most relevant transactions):
%s

USER'S QUESTION: %s

GUIDELINES:
- Be conversational and natural - avoid robotic templates
- Directly answer what they're asking
- Provide specific details (amounts, dates, names, transaction IDs when relevant)
- If they want a list, mention the transactions you found
- If they want analysis, provide insights and patterns
- If they want a summary, give an overview with key statistics
- Use emojis moderately for friendliness
- Be accurate with numbers and facts
- Match the user's language style and tone

YOUR NATURAL, HELPFUL RESPONSE:`, context, question)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
