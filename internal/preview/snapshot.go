package preview

import "sort"

// Snapshot is the serializable form of a session's mutable state. Structural
// data is not part of it: a session is restored by pairing a snapshot with
// freshly loaded SectionData, which keeps numbering derived rather than
// stored.
type Snapshot struct {
	Answers         map[int]string            `json:"answers"`
	ActiveNum       int                       `json:"active_num"`
	ActiveMatchSlot int                       `json:"active_match_slot"`
	InstructionOpen bool                      `json:"instruction_open"`
	PlayingAudio    string                    `json:"playing_audio"`
	Speaking        map[uint]SpeakingSnapshot `json:"speaking"`
}

type SpeakingSnapshot struct {
	ActiveSubIdx int               `json:"active_sub_idx"`
	Recordings   map[int]Recording `json:"recordings"`
	Submitted    []int             `json:"submitted"`
	Skipped      []int             `json:"skipped"`
}

// Snapshot captures the session's mutable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Answers:         s.Answers(),
		ActiveNum:       s.activeNum,
		ActiveMatchSlot: s.activeMatchSlot,
		InstructionOpen: s.instructionOpen,
		PlayingAudio:    s.playingAudio,
		Speaking:        make(map[uint]SpeakingSnapshot, len(s.speaking)),
	}

	for qid, st := range s.speaking {
		ss := SpeakingSnapshot{
			ActiveSubIdx: st.ActiveSubIdx,
			Recordings:   make(map[int]Recording, len(st.Recordings)),
		}
		for idx, rec := range st.Recordings {
			ss.Recordings[idx] = rec
		}
		for idx := range st.Submitted {
			ss.Submitted = append(ss.Submitted, idx)
		}
		for idx := range st.Skipped {
			ss.Skipped = append(ss.Skipped, idx)
		}
		sort.Ints(ss.Submitted)
		sort.Ints(ss.Skipped)
		snap.Speaking[qid] = ss
	}

	return snap
}

// RestoreSession rebuilds a session from structural data plus a snapshot.
func RestoreSession(data SectionData, snap Snapshot) *Session {
	s := NewSession(data)

	if snap.Answers != nil {
		for num, val := range snap.Answers {
			if num >= 1 && num <= s.totalItems && val != "" {
				s.answers[num] = val
			}
		}
	}
	if snap.ActiveNum >= 1 {
		s.activeNum = snap.ActiveNum
	}
	s.activeMatchSlot = snap.ActiveMatchSlot
	s.instructionOpen = snap.InstructionOpen
	s.playingAudio = snap.PlayingAudio

	for qid, ss := range snap.Speaking {
		st, err := s.SpeakingStateFor(qid)
		if err != nil {
			continue
		}
		st.ActiveSubIdx = ss.ActiveSubIdx
		for idx, rec := range ss.Recordings {
			st.Recordings[idx] = rec
		}
		for _, idx := range ss.Submitted {
			st.Submitted[idx] = struct{}{}
		}
		for _, idx := range ss.Skipped {
			st.Skipped[idx] = struct{}{}
		}
	}

	return s
}
