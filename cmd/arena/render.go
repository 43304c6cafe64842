package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/IlikeChooros/go-chess-agents/pkg/bench"
	"github.com/IlikeChooros/go-chess-agents/pkg/chess"
	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/muesli/termenv"
)

const (
	lightSquare  = "#eeeed2"
	darkSquare   = "#769656"
	lastMoveFrom = "#fff2a8"
	lastMoveTo   = "#ffd54f"
	checkSquare  = "#ff4d4d"
	whitePiece   = "#ffffff"
	blackPiece   = "#000000"
)

var pieceLetters = [...]string{"P", "N", "B", "R", "Q", "K"}

// Square index of the coordinate ("e4" -> 28), -1 if it's not a square
func parseSquare(s string) int {
	if len(s) < 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return -1
	}
	return int(s[1]-'1')*8 + int(s[0]-'a')
}

// Status line of the position
func status(b *chess.Board) string {
	switch {
	case b.IsCheckmate():
		return fmt.Sprintf("CHECKMATE, %s wins!", b.Turn().Other())
	case b.IsStalemate():
		return "DRAW, stalemate."
	case b.IsTerminated():
		return "DRAW."
	case b.IsCheck():
		return fmt.Sprintf("CHECK, %s king is under attack.", b.Turn())
	}
	return "Game in progress..."
}

// Board with rank 8 on top, the last move and a king in check highlighted
func renderBoard(out *termenv.Output, b *chess.Board, lastMove string) string {
	highlight := map[int]string{}
	if len(lastMove) >= 4 {
		highlight[parseSquare(lastMove[:2])] = lastMoveFrom
		highlight[parseSquare(lastMove[2:4])] = lastMoveTo
	}
	if b.IsCheck() {
		if king, ok := b.KingSquare(b.Turn()); ok {
			highlight[king] = checkSquare
		}
	}

	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := rank*8 + file
			bg := darkSquare
			if (rank+file)%2 == 1 {
				bg = lightSquare
			}
			if color, ok := highlight[sq]; ok {
				bg = color
			}

			text, fg := " ", whitePiece
			if piece, side, ok := b.PieceAt(sq); ok {
				text = pieceLetters[piece]
				if side == game.Black {
					text = strings.ToLower(text)
					fg = blackPiece
				}
			}

			sb.WriteString(out.String(" " + text + " ").
				Foreground(out.Color(fg)).
				Background(out.Color(bg)).
				Bold().
				String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	return sb.String()
}

// Listener printing the board after every move
type boardPrinter struct {
	out *termenv.Output
}

func (p *boardPrinter) print(b *chess.Board, lastMove string) {
	fmt.Fprint(p.out, renderBoard(p.out, b, lastMove))
	fmt.Fprintf(p.out, "%s to move. %s\n\n", b.Turn(), status(b))
}

func (p *boardPrinter) OnMoveMade(info bench.MoveInfo[chess.Move], b *chess.Board) {
	fmt.Fprintf(p.out, "%d. %s (%s) plays %s in %s\n", info.Ply, info.Agent, info.Side, info.Notation, info.Elapsed.Round(time.Millisecond))
	p.print(b, info.Notation)
}

func (p *boardPrinter) OnFinishedGame(record *bench.Record, b *chess.Board) {
	line := fmt.Sprintf("%s - %s  %s (%s)", record.White, record.Black, record.Result, record.Termination)
	fmt.Fprintln(p.out, p.out.String(line).Bold().String())
}
