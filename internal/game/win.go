package game

// winLines are the index triples that complete a bingo: rows, columns, diagonals.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// HasWin reports whether any line has all three cells correct.
// Wrong and default cells are equivalent here.
func HasWin(card Card) bool {
	for _, line := range winLines {
		if card[line[0]].State == CellCorrect &&
			card[line[1]].State == CellCorrect &&
			card[line[2]].State == CellCorrect {
			return true
		}
	}
	return false
}
