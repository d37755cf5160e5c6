package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	termbox "github.com/nsf/termbox-go"

	mb "github.com/hamedsk/gridstrike/models/battleship"
	"github.com/hamedsk/gridstrike/peer"
	"github.com/hamedsk/gridstrike/transport"
	"github.com/hamedsk/gridstrike/transport/multicast"
	"github.com/hamedsk/gridstrike/transport/wsbridge"
)

const drainInterval = 50 * time.Millisecond

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file loaded:", err)
	}

	group := transport.DefaultGroup
	if raw := os.Getenv("GROUP"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			log.Fatalf("invalid GROUP value %q: %v", raw, err)
		}
		group = uint8(parsed)
	}

	tr, err := chooseTransport(group)
	if err != nil {
		log.Fatalln("failed to join broadcast medium:", err)
	}
	defer tr.Close()

	if err := termbox.Init(); err != nil {
		log.Fatalln("failed to init terminal:", err)
	}
	defer termbox.Close()

	display := newBoardDisplay()
	p := peer.NewPeer(tr, display)
	display.draw()

	events := make(chan termbox.Event)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if ev.Type != termbox.EventKey {
				continue
			}
			if !handleKey(p, ev) {
				// Orderly departure before tearing the transport down.
				p.Leave()
				p.Drain()
				return
			}

		case <-ticker.C:
		}

		p.Drain()
		display.draw()
	}
}

// chooseTransport prefers the relay bridge when a url is configured
// and falls back to local network multicast.
func chooseTransport(group uint8) (transport.Transport, error) {
	if url := os.Getenv("RELAY_URL"); url != "" {
		return wsbridge.Dial(url, group)
	}
	return multicast.Join(group)
}

func handleKey(p *peer.Peer, ev termbox.Event) bool {
	switch ev.Key {
	case termbox.KeyArrowLeft:
		p.MoveX(-1)
	case termbox.KeyArrowRight:
		p.MoveX(1)
	case termbox.KeyArrowUp:
		p.MoveY(-1)
	case termbox.KeyArrowDown:
		p.MoveY(1)
	case termbox.KeyEnter, termbox.KeySpace:
		p.Confirm()
	case termbox.KeyEsc:
		return false
	default:
		switch ev.Ch {
		case 'j', 'J':
			p.Join()
		case 'q', 'Q':
			return false
		}
	}
	return true
}

// boardDisplay renders the local board, the attack board and the
// status surface. All its methods run on the main loop goroutine.
type boardDisplay struct {
	status string
	cursor mb.Coordinates

	fleet    map[mb.Coordinates]bool
	incoming map[mb.Coordinates]bool // true for hit, present for any
	shots    map[mb.Coordinates]bool
}

func newBoardDisplay() *boardDisplay {
	return &boardDisplay{
		fleet:    make(map[mb.Coordinates]bool),
		incoming: make(map[mb.Coordinates]bool),
		shots:    make(map[mb.Coordinates]bool),
	}
}

func (bd *boardDisplay) Status(code string) { bd.status = code }

func (bd *boardDisplay) Cursor(c mb.Coordinates) { bd.cursor = c }

func (bd *boardDisplay) ShipPlaced(cells []mb.Coordinates) {
	for _, cell := range cells {
		bd.fleet[cell] = true
	}
}

func (bd *boardDisplay) ShotResult(c mb.Coordinates, hit bool) {
	bd.shots[c] = hit
}

func (bd *boardDisplay) IncomingAttack(c mb.Coordinates, hit bool) {
	bd.incoming[c] = hit
}

const (
	ownBoardX    = 0
	attackBoardX = 14
	boardY       = 2
)

func (bd *boardDisplay) draw() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	drawText(0, 0, "gridstrike ["+bd.status+"]  j:join  enter:confirm  q:quit")
	drawText(ownBoardX, boardY-1, "your board")
	drawText(attackBoardX, boardY-1, "your shots")

	for y := uint8(0); y < mb.GridSize; y++ {
		for x := uint8(0); x < mb.GridSize; x++ {
			cell := mb.NewCoordinates(x, y)

			ch := '.'
			if bd.fleet[cell] {
				ch = '#'
			}
			if hit, prs := bd.incoming[cell]; prs {
				if hit {
					ch = '*'
				} else {
					ch = 'o'
				}
			}
			fg := termbox.ColorDefault
			if cell == bd.cursor {
				fg = termbox.ColorBlack | termbox.AttrBold
				termbox.SetCell(ownBoardX+int(x)*2, boardY+int(y), ch, fg, termbox.ColorWhite)
			} else {
				termbox.SetCell(ownBoardX+int(x)*2, boardY+int(y), ch, fg, termbox.ColorDefault)
			}

			shotCh := '.'
			if hit, prs := bd.shots[cell]; prs {
				if hit {
					shotCh = 'X'
				} else {
					shotCh = 'o'
				}
			}
			termbox.SetCell(attackBoardX+int(x)*2, boardY+int(y), shotCh, termbox.ColorDefault, termbox.ColorDefault)
		}
	}

	termbox.Flush()
}

func drawText(x, y int, text string) {
	for i, ch := range text {
		termbox.SetCell(x+i, y, ch, termbox.ColorDefault, termbox.ColorDefault)
	}
}
