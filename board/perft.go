package board

// Perft counts leaf nodes (move sequences) from the position for a given depth.
// The last ply is bulk-counted from the legal move list.
func Perft(s *State, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	if depth == 1 {
		return uint64(len(s.moves.Legal))
	}
	var nodes uint64
	for _, m := range s.moves.Legal {
		child := s.Clone()
		child.apply(m)
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move (coordinate string) to the
// number of leaf nodes reachable from that move at the given depth.
func PerftDivide(s *State, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range s.moves.Legal {
		child := s.Clone()
		child.apply(m)
		result[m.String()] = Perft(child, depth-1)
	}
	return result
}
