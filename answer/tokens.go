package answer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/micronauticals/txnquery/common/logger"
)

// tokenCodec is the slice of the tiktoken API the budget logic needs.
type tokenCodec interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

var (
	encoderOnce sync.Once
	encoder     tokenCodec
)

func getEncoder() tokenCodec {
	encoderOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			logger.Warnf("answer: token encoder unavailable, budgets disabled: %v", err)
			return
		}
		encoder = enc
	})
	return encoder
}

// CountTokens returns the token length of s, or -1 when the encoder is
// unavailable.
func CountTokens(s string) int {
	enc := getEncoder()
	if enc == nil {
		return -1
	}
	return len(enc.Encode(s, nil, nil))
}

// TrimToBudget cuts s down to at most budget tokens, preserving a
// prefix. With no budget, or with the encoder unavailable, s passes
// through unchanged. Only safe for prompts that lead with the question.
func TrimToBudget(s string, budget int) string {
	if budget <= 0 {
		return s
	}
	enc := getEncoder()
	if enc == nil {
		return s
	}
	tokens := enc.Encode(s, nil, nil)
	if len(tokens) <= budget {
		return s
	}
	logger.Warnf("answer: prompt of %d tokens trimmed to %d", len(tokens), budget)
	return enc.Decode(tokens[:budget])
}

// TrimContext cuts a context block so the prompt assembled around it
// stays within budget tokens. frame is the prompt rendered with an
// empty block; its tokens (the question and instructions) are reserved
// and never cut. A budget too small for the frame drops the block
// entirely.
func TrimContext(block, frame string, budget int) string {
	if budget <= 0 {
		return block
	}
	enc := getEncoder()
	if enc == nil {
		return block
	}

	allowed := budget - len(enc.Encode(frame, nil, nil))
	if allowed <= 0 {
		logger.Warnf("answer: budget of %d tokens leaves no room for context", budget)
		return ""
	}
	tokens := enc.Encode(block, nil, nil)
	if len(tokens) <= allowed {
		return block
	}
	logger.Warnf("answer: context of %d tokens trimmed to %d", len(tokens), allowed)
	return enc.Decode(tokens[:allowed])
}
