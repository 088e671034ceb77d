package types

import "testing"

func TestFilterMatchesAddressAllowlist(t *testing.T) {
	addr := BytesToAddress([]byte{1})
	other := BytesToAddress([]byte{2})
	log := &Log{Address: addr}

	f := Filter{Addresses: []Address{addr}}
	if !f.Matches(log) {
		t.Fatal("expected log matching an allowlisted address to match")
	}

	f2 := Filter{Addresses: []Address{other}}
	if f2.Matches(log) {
		t.Fatal("expected log with a non-allowlisted address to not match")
	}

	fEmpty := Filter{}
	if !fEmpty.Matches(log) {
		t.Fatal("expected empty address allowlist to match everything")
	}
}

func TestFilterTopicPositionalMatching(t *testing.T) {
	t0 := BytesToHash([]byte("topic0"))
	t1 := BytesToHash([]byte("topic1"))
	other := BytesToHash([]byte("other"))

	log := &Log{Topics: []Hash{t0, t1}}

	f := Filter{Topics: []TopicMatcher{MatchTopic(t0), AnyTopic()}}
	if !f.MatchesTopics(log.Topics) {
		t.Fatal("expected exact-match-plus-wildcard filter to match")
	}

	f2 := Filter{Topics: []TopicMatcher{MatchTopic(other)}}
	if f2.MatchesTopics(log.Topics) {
		t.Fatal("expected mismatched topic filter to fail")
	}

	f3 := Filter{Topics: []TopicMatcher{AnyTopic(), AnyTopic(), MatchTopic(t0)}}
	if f3.MatchesTopics(log.Topics) {
		t.Fatal("expected filter requiring a third topic absent from the log to fail")
	}
}

func TestFilterTopicOrWithinPosition(t *testing.T) {
	t0 := BytesToHash([]byte("topic0"))
	t1 := BytesToHash([]byte("topic1"))
	log := &Log{Topics: []Hash{t1}}

	f := Filter{Topics: []TopicMatcher{MatchTopic(t0, t1)}}
	if !f.MatchesTopics(log.Topics) {
		t.Fatal("expected OR-list topic matcher to accept any listed hash at that position")
	}
}

func TestFilterLogsPreservesOrder(t *testing.T) {
	addr := BytesToAddress([]byte{1})
	other := BytesToAddress([]byte{2})
	logs := []*Log{
		{Address: addr, Index: 0},
		{Address: other, Index: 1},
		{Address: addr, Index: 2},
	}
	f := Filter{Addresses: []Address{addr}}
	matched := FilterLogs(logs, f)
	if len(matched) != 2 || matched[0].Index != 0 || matched[1].Index != 2 {
		t.Fatalf("unexpected filtered logs: %+v", matched)
	}
}

func TestBloomCandidateMultiAddressIsOR(t *testing.T) {
	present := BytesToAddress([]byte{0xDD})
	absent := BytesToAddress([]byte{0xEE})
	bloom := LogsBloom([]*Log{{Address: present}})

	f := Filter{Addresses: []Address{absent, present}}
	if !f.BloomCandidate(bloom) {
		t.Fatal("expected multi-address filter to be a bloom candidate if any address is present")
	}

	fAllAbsent := Filter{Addresses: []Address{absent}}
	if fAllAbsent.BloomCandidate(bloom) {
		t.Fatal("expected filter to reject a bloom missing every candidate address")
	}
}
