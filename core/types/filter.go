package types

import (
	"sort"

	"github.com/ethlayer/primitives/common"
)

// TopicMatcher selects which values are acceptable for one position in
// a log's topic list. It is a tagged union over "don't care" and
// "match any of these hashes" (Ethereum's eth_getLogs topic filter
// allows either a single hash or an OR-list per position).
type TopicMatcher struct {
	any   bool
	hashes []Hash
}

// AnyTopic matches any value, but the log must still carry a topic at
// that position.
func AnyTopic() TopicMatcher { return TopicMatcher{any: true} }

// MatchTopic matches exactly one of the given hashes.
func MatchTopic(hashes ...Hash) TopicMatcher { return TopicMatcher{hashes: hashes} }

// matches reports whether topic satisfies this matcher at a position
// where the log actually carries a topic. A wildcard (AnyTopic) still
// requires the log to have a topic at that position — a filter entry
// of N positions can never match a log with fewer than N topics.
func (m TopicMatcher) matches(topic Hash, present bool) bool {
	if !present {
		return false
	}
	if m.any {
		return true
	}
	for _, h := range m.hashes {
		if h == topic {
			return true
		}
	}
	return false
}

// Filter describes a log query: an address allowlist, a per-position
// topic matcher list, and an inclusive block range, matching the shape
// of eth_getLogs filter objects.
type Filter struct {
	Addresses []Address
	Topics    []TopicMatcher
	FromBlock *uint64
	ToBlock   *uint64
}

// MatchesBlockRange reports whether blockNumber falls within the
// filter's [FromBlock, ToBlock] range (either bound absent means
// unconstrained on that side).
func (f Filter) MatchesBlockRange(blockNumber uint64) bool {
	if f.FromBlock != nil && blockNumber < *f.FromBlock {
		return false
	}
	if f.ToBlock != nil && blockNumber > *f.ToBlock {
		return false
	}
	return true
}

// MatchesAddress reports whether addr satisfies the filter's address
// constraint (an empty Addresses list matches every address).
func (f Filter) MatchesAddress(addr Address) bool {
	if len(f.Addresses) == 0 {
		return true
	}
	for _, a := range f.Addresses {
		if a == addr {
			return true
		}
	}
	return false
}

// MatchesTopics reports whether a log's topic list satisfies every
// positional matcher in the filter. Extra trailing topics on the log
// beyond len(f.Topics) are ignored, per the eth_getLogs semantics.
func (f Filter) MatchesTopics(topics []Hash) bool {
	for i, matcher := range f.Topics {
		present := i < len(topics)
		var topic Hash
		if present {
			topic = topics[i]
		}
		if !matcher.matches(topic, present) {
			return false
		}
	}
	return true
}

// Matches reports whether log satisfies the address, topic, and block
// range constraints of the filter.
func (f Filter) Matches(log *Log) bool {
	return f.MatchesAddress(log.Address) &&
		f.MatchesTopics(log.Topics) &&
		f.MatchesBlockRange(log.BlockNumber)
}

// BloomCandidate reports whether bloom could contain matches for this
// filter: at least one named address (when any are named) must test
// positive in the bloom, and for every non-wildcard matcher at least one
// of its hashes must test positive. This is a necessary, not
// sufficient, pre-filter — intended to let a caller skip decoding full
// log lists for receipts whose bloom rules them out entirely.
func (f Filter) BloomCandidate(bloom Bloom) bool {
	if len(f.Addresses) > 0 {
		anyAddrPositive := false
		for _, addr := range f.Addresses {
			if common.BloomContains(bloom, addr.Bytes(), keccak256One) {
				anyAddrPositive = true
				break
			}
		}
		if !anyAddrPositive {
			return false
		}
	}
	for _, matcher := range f.Topics {
		if matcher.any || len(matcher.hashes) == 0 {
			continue
		}
		anyPositive := false
		for _, h := range matcher.hashes {
			if common.BloomContains(bloom, h.Bytes(), keccak256One) {
				anyPositive = true
				break
			}
		}
		if !anyPositive {
			return false
		}
	}
	return true
}

// FilterLogs returns the subset of logs matching f, preserving order.
func FilterLogs(logs []*Log, f Filter) []*Log {
	var out []*Log
	for _, log := range logs {
		if f.Matches(log) {
			out = append(out, log)
		}
	}
	return out
}

// SortLogs orders logs by (BlockNumber, Index) ascending, stably.
func SortLogs(logs []*Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})
}
