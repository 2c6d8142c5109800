package analyze

import "math"

const DefaultTopParticipants = 6

type Share struct {
	Sender   string  `json:"sender"`
	Messages int     `json:"messages"`
	Percent  float64 `json:"percent"`
}

// ActiveParticipants ranks senders by their share of all messages, as a
// percentage rounded to two decimals. It ignores any sender filter.
// n <= 0 means 6.
func (s *Session) ActiveParticipants(n int) ([]Share, error) {
	if n <= 0 {
		n = DefaultTopParticipants
	}
	total := s.frame.Len()
	if total == 0 {
		return nil, nil
	}

	counts, err := s.frame.SenderCounts()
	if err != nil {
		return nil, err
	}
	if len(counts) > n {
		counts = counts[:n]
	}

	shares := make([]Share, 0, len(counts))
	for _, c := range counts {
		pct := float64(c.Count) / float64(total) * 100
		shares = append(shares, Share{
			Sender:   c.Sender,
			Messages: c.Count,
			Percent:  math.RoundToEven(pct*100) / 100,
		})
	}
	return shares, nil
}
