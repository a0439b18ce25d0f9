package api

import "interview-pipeline/internal/app/model"

// RefineSegments tightens segment boundaries to the word-level timestamps
// that fall inside each segment. Segments without overlapping words keep
// their original boundaries. Order is preserved.
func RefineSegments(segments []model.Segment, words []model.Word) []model.Segment {
	if len(words) == 0 {
		return segments
	}

	refined := make([]model.Segment, len(segments))
	copy(refined, segments)

	for i := range refined {
		seg := &refined[i]
		first, last := -1, -1
		for w, word := range words {
			if word.End <= seg.Start || word.Start >= seg.End {
				continue
			}
			if first == -1 {
				first = w
			}
			last = w
		}
		if first == -1 {
			continue
		}
		seg.Start = words[first].Start
		seg.End = words[last].End
	}
	return refined
}

// AssignSpeakers labels each segment with the speaker whose diarization turn
// overlaps it the most. Segments with no overlapping turn stay unlabeled.
func AssignSpeakers(segments []model.Segment, turns []Turn) []model.Segment {
	if len(turns) == 0 {
		return segments
	}

	labeled := make([]model.Segment, len(segments))
	copy(labeled, segments)

	for i := range labeled {
		seg := &labeled[i]
		bestOverlap := 0.0
		for _, turn := range turns {
			overlap := min(seg.End, turn.End) - max(seg.Start, turn.Start)
			if overlap > bestOverlap {
				bestOverlap = overlap
				seg.Speaker = turn.Speaker
			}
		}
	}
	return labeled
}
