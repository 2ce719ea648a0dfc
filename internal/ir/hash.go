package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future encoding change.
const (
	DomainProblem = "limitbreak/problem/v1"
	DomainOutcome = "limitbreak/outcome/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data) in hex.
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProblemObject returns the canonical object for a solve request.
// Coin order is preserved: the count is permutation invariant but the
// request as entered is not, and reports echo the request.
func ProblemObject(target, maxCoins int64, coins []int64) IRObject {
	return IRObject{
		"target":    IRInt(target),
		"max_coins": IRInt(maxCoins),
		"coins":     Ints(coins),
	}
}

// ProblemID computes the content-addressed ID of a solve request.
func ProblemID(target, maxCoins int64, coins []int64) string {
	// ProblemObject contains only ints, so canonical marshaling cannot fail.
	canonical, err := MarshalCanonical(ProblemObject(target, maxCoins, coins))
	if err != nil {
		panic(fmt.Sprintf("ProblemID: %v", err))
	}
	return hashWithDomain(DomainProblem, canonical)
}

// OutcomeObject returns the canonical object for a solve result. Two
// reports with equal OutcomeObjects agree on what was computed even if their
// report IDs and timings differ.
func OutcomeObject(problemID string, count int64, errCode string) IRObject {
	return IRObject{
		"problem_id": IRString(problemID),
		"count":      IRInt(count),
		"error_code": IRString(errCode),
	}
}

// OutcomeID computes the content-addressed ID of a solve result.
func OutcomeID(problemID string, count int64, errCode string) string {
	id, err := OutcomeHash(OutcomeObject(problemID, count, errCode))
	if err != nil {
		panic(fmt.Sprintf("OutcomeID: %v", err))
	}
	return id
}

// OutcomeHash computes a content-addressed hash of an outcome object.
// Returns an error if the object cannot be canonically marshaled.
func OutcomeHash(outcome IRObject) (string, error) {
	canonical, err := MarshalCanonical(outcome)
	if err != nil {
		return "", fmt.Errorf("OutcomeHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainOutcome, canonical), nil
}
