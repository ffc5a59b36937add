// internal/game/controller.go
//
// GameController: owns one player's session and is the only thing that
// mutates it. Every intent (select list, click, new card, reset, back) and
// every timer firing runs under the controller mutex, so a session behaves
// as a single-threaded event loop.
//
// Session phases (looplab/fsm):
//   selecting --select--> playing --win--> won
//                                 --end--> over
//   playing|won|over --reset--> playing
//   playing|won|over --back--> selecting
//
// After a correct answer, once the feedback delay elapses, the rules run in
// this order:
//   1. every word of the list correct -> card logged as bingo, session won
//      (beats a line check on the same click)
//   2. a line is complete             -> card concluded as bingo
//   3. otherwise next prompt; an exhausted queue concludes the card as failed
// After an incorrect answer only step 3 applies, once the cell reverts.
// A concluded card is logged; the session is over when the log reaches the
// card cap, otherwise a new card is dealt after the card delay.
//
// Timers carry the card generation they were issued for and are stopped on
// every rotation, reset and back; a stale timer that still fires does nothing.

package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

// Phase is the session-level state.
type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhasePlaying   Phase = "playing"
	PhaseWon       Phase = "won"
	PhaseOver      Phase = "over"
)

const (
	evSelect = "select"
	evWin    = "win"
	evEnd    = "end"
	evReset  = "reset"
	evBack   = "back"
)

// ErrListSelected is returned by SelectList outside the list picker.
var ErrListSelected = errors.New("a list is already selected")

// Options tune card cap and feedback delays.
type Options struct {
	CardCap        int
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
	CardDelay      time.Duration
}

// DefaultOptions returns the standard cap and delays.
func DefaultOptions() Options {
	return Options{
		CardCap:        DefaultCardCap,
		CorrectDelay:   2500 * time.Millisecond,
		IncorrectDelay: 3 * time.Second,
		CardDelay:      2 * time.Second,
	}
}

// Cue is the audio side effect requested once per incorrect answer.
type Cue interface {
	Play()
}

type nopCue struct{}

func (nopCue) Play() {}

// Summary describes a finished session.
type Summary struct {
	SessionID    string
	ListID       string
	Won          bool
	CardsPlayed  int
	WordsCorrect int
	TotalWords   int
	History      []HistoryEntry
}

// Option configures a Controller.
type Option func(*Controller)

func WithClock(clk Clock) Option   { return func(c *Controller) { c.clock = clk } }
func WithRand(rng Rand) Option     { return func(c *Controller) { c.rng = rng } }
func WithCue(cue Cue) Option       { return func(c *Controller) { c.cue = cue } }
func WithOptions(o Options) Option { return func(c *Controller) { c.opts = o } }

// OnFinish registers a hook called when the session is won or over. It runs
// with the controller locked and must not call back into the controller.
func OnFinish(f func(Summary)) Option { return func(c *Controller) { c.onFinish = f } }

// Controller is the session state machine.
type Controller struct {
	mu       sync.Mutex
	id       string
	opts     Options
	clock    Clock
	rng      Rand
	baseRng  Rand
	cue      Cue
	onFinish func(Summary)
	phase    *fsm.FSM

	listID   string
	listName string
	words    []WordEntry

	card     Card
	queue    Queue
	prompt   *Prompt
	results  CardResult
	history  []HistoryEntry
	feedback *Feedback
	flags    Flags

	gen    uint64
	timers []Timer
}

// NewController returns a controller waiting in the list picker.
func NewController(id string, opts ...Option) *Controller {
	c := &Controller{
		id:      id,
		opts:    DefaultOptions(),
		clock:   SystemClock{},
		cue:     nopCue{},
		results: CardResult{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.rng == nil {
		c.rng = NewRand(RandomSeed())
	}
	c.baseRng = c.rng
	if c.opts.CardCap <= 0 {
		c.opts.CardCap = DefaultCardCap
	}
	c.phase = fsm.NewFSM(
		string(PhaseSelecting),
		fsm.Events{
			{Name: evSelect, Src: []string{string(PhaseSelecting)}, Dst: string(PhasePlaying)},
			{Name: evWin, Src: []string{string(PhasePlaying)}, Dst: string(PhaseWon)},
			{Name: evEnd, Src: []string{string(PhasePlaying)}, Dst: string(PhaseOver)},
			{Name: evReset, Src: []string{string(PhasePlaying), string(PhaseWon), string(PhaseOver)}, Dst: string(PhasePlaying)},
			{Name: evBack, Src: []string{string(PhasePlaying), string(PhaseWon), string(PhaseOver)}, Dst: string(PhaseSelecting)},
		},
		fsm.Callbacks{},
	)
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string { return c.id }

// Phase returns the current session phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current()
}

func (c *Controller) current() Phase { return Phase(c.phase.Current()) }

// SelectList starts a session on the given list. rng, when non-nil, is the
// random source for this list only (seeded daily play); nil uses the
// controller's own source.
func (c *Controller) SelectList(listID, name string, words []WordEntry, rng Rand) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current() != PhaseSelecting {
		return ErrListSelected
	}
	if err := ValidateList(words); err != nil {
		return fmt.Errorf("list %s: %w", listID, err)
	}
	c.rng = c.baseRng
	if rng != nil {
		c.rng = rng
	}
	c.listID, c.listName = listID, name
	c.words = append([]WordEntry(nil), words...)
	c.history = nil
	c.flags = Flags{}
	if err := c.fire(evSelect); err != nil {
		return err
	}
	return c.startCard()
}

// Click handles a cell click. Out-of-range indexes are an error; every
// other rejected click reports ResultIgnored.
func (c *Controller) Click(index int) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current() != PhasePlaying {
		if index < 0 || index >= CardSize {
			return ResultIgnored, fmt.Errorf("%w: %d", ErrCellIndex, index)
		}
		return ResultIgnored, nil
	}
	v, err := Evaluate(index, c.prompt, &c.card, c.busy())
	if err != nil || v.Result == ResultIgnored {
		return v.Result, err
	}
	v.Apply(&c.card, c.results)

	switch v.Result {
	case ResultCorrect:
		c.feedback = &Feedback{Kind: FeedbackCorrect}
		c.after(c.opts.CorrectDelay, c.advanceAfterCorrect)
	case ResultIncorrect:
		c.feedback = &Feedback{Kind: FeedbackIncorrect, RevealedAnswer: v.Word}
		c.cue.Play()
		cell := v.Cell
		c.after(c.opts.IncorrectDelay, func() { c.revertAfterIncorrect(cell) })
	}
	return v.Result, nil
}

// NewCard abandons the active card as failed and deals the next one, or
// deals immediately when the card has already concluded. It reports false
// when the request was ignored (not playing, or a feedback window is open).
func (c *Controller) NewCard() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current() != PhasePlaying || c.feedback != nil {
		return false, nil
	}
	if c.flags.CardWon || c.flags.CardFailed {
		return true, c.startCard()
	}
	c.cancelTimers()
	if c.concludeCard(OutcomeFailed) {
		return true, nil
	}
	return true, c.startCard()
}

// Reset clears the whole session on the current list and deals a first card.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current() == PhaseSelecting {
		return ErrNotPlaying
	}
	c.cancelTimers()
	c.history = nil
	c.flags = Flags{}
	if err := c.fire(evReset); err != nil {
		return err
	}
	return c.startCard()
}

// Back returns to the list picker and drops all per-session state.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimers()
	c.gen++
	if c.current() != PhaseSelecting {
		_ = c.fire(evBack)
	}
	c.listID, c.listName, c.words = "", "", nil
	c.rng = c.baseRng
	c.card = Card{}
	c.queue = Queue{}
	c.prompt = nil
	c.results = CardResult{}
	c.history = nil
	c.feedback = nil
	c.flags = Flags{}
}

// Stop cancels pending timers; used when the session is discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimers()
	c.gen++
}

// busy is true while a feedback window or a card conclusion is pending.
func (c *Controller) busy() bool {
	return c.feedback != nil || c.flags.CardWon || c.flags.CardFailed
}

func (c *Controller) advanceAfterCorrect() {
	c.feedback = nil
	if IsSessionComplete(c.history, c.results, len(c.words)) {
		c.logCard(OutcomeBingo)
		c.flags.GameWon = true
		_ = c.fire(evWin)
		c.finish(true)
		return
	}
	if HasWin(c.card) {
		c.concludeCard(OutcomeBingo)
		return
	}
	c.advancePrompt()
}

func (c *Controller) revertAfterIncorrect(cell int) {
	if c.card[cell].State == CellWrong {
		c.card[cell].State = CellDefault
	}
	c.feedback = nil
	c.advancePrompt()
}

func (c *Controller) advancePrompt() {
	p, q, ok := NextPrompt(c.queue, c.card, c.rng)
	c.queue = q
	if !ok {
		c.concludeCard(OutcomeFailed)
		return
	}
	c.prompt = &p
}

// concludeCard logs the card and reports whether that ended the session.
func (c *Controller) concludeCard(o Outcome) bool {
	c.logCard(o)
	c.flags.CardWon = o == OutcomeBingo
	c.flags.CardFailed = o == OutcomeFailed
	if len(c.history) >= c.opts.CardCap {
		c.flags.GameOver = true
		_ = c.fire(evEnd)
		c.finish(false)
		return true
	}
	c.after(c.opts.CardDelay, func() { _ = c.startCard() })
	return false
}

// logCard moves the current card's results into the history. From here on
// the card counts only through its history entry.
func (c *Controller) logCard(o Outcome) {
	c.history = append(c.history, HistoryEntry{Results: c.results.clone(), Outcome: o})
	c.results = CardResult{}
	c.prompt = nil
	c.feedback = nil
}

// startCard deals a new card biased by the mastery so far.
func (c *Controller) startCard() error {
	c.cancelTimers()
	c.gen++

	card, err := BuildCard(c.words, ComputeStatus(c.history, nil), c.rng)
	if err != nil {
		return err
	}
	c.card = card
	c.queue = NewQueue(c.words, c.rng)
	c.results = CardResult{}
	c.feedback = nil
	c.flags.CardWon, c.flags.CardFailed = false, false
	c.advancePrompt()
	return nil
}

// after schedules f for the current generation.
func (c *Controller) after(d time.Duration, f func()) {
	gen := c.gen
	t := c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != gen {
			return
		}
		f()
	})
	c.timers = append(c.timers, t)
}

func (c *Controller) cancelTimers() {
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}

func (c *Controller) fire(ev string) error {
	err := c.phase.Event(context.Background(), ev)
	var same fsm.NoTransitionError
	if err != nil && !errors.As(err, &same) {
		return fmt.Errorf("session %s: %w", c.id, err)
	}
	return nil
}

func (c *Controller) finish(won bool) {
	c.cancelTimers()
	if c.onFinish == nil {
		return
	}
	correct := CorrectWords(c.history, c.results)
	c.onFinish(Summary{
		SessionID:    c.id,
		ListID:       c.listID,
		Won:          won,
		CardsPlayed:  len(c.history),
		WordsCorrect: len(correct),
		TotalWords:   len(c.words),
		History:      append([]HistoryEntry(nil), c.history...),
	})
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	ID         string                `json:"id"`
	Phase      Phase                 `json:"phase"`
	ListID     string                `json:"listId,omitempty"`
	ListName   string                `json:"listName,omitempty"`
	Card       *Card                 `json:"card,omitempty"`
	Prompt     *Prompt               `json:"prompt"`
	Feedback   *Feedback             `json:"feedback"`
	Results    CardResult            `json:"results"`
	History    []HistoryEntry        `json:"history"`
	Status     map[string]WordStatus `json:"status"`
	Progress   Progress              `json:"progress"`
	Words      []string              `json:"words"`
	CardNumber int                   `json:"cardNumber"`
	CardCap    int                   `json:"cardCap"`
	Flags      Flags                 `json:"flags"`
}

// Snapshot copies the session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		ID:       c.id,
		Phase:    c.current(),
		ListID:   c.listID,
		ListName: c.listName,
		Results:  c.results.clone(),
		History:  append([]HistoryEntry{}, c.history...),
		Status:   ComputeStatus(c.history, c.results),
		Progress: Summarize(c.history, c.results, len(c.words)),
		CardCap:  c.opts.CardCap,
		Flags:    c.flags,
	}
	if s.Phase == PhaseSelecting {
		return s
	}
	card := c.card
	s.Card = &card
	if c.prompt != nil {
		p := *c.prompt
		s.Prompt = &p
	}
	if c.feedback != nil {
		f := *c.feedback
		s.Feedback = &f
	}
	s.Words = make([]string, 0, len(c.words))
	for _, w := range c.words {
		s.Words = append(s.Words, w.Word)
	}
	sort.Strings(s.Words)
	s.CardNumber = len(c.history)
	if !c.flags.CardWon && !c.flags.CardFailed && !c.flags.GameWon && !c.flags.GameOver {
		s.CardNumber++
	}
	return s
}
