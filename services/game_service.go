package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"quizplay/models"
)

// Catalog is the read side of the quiz catalog the game engine needs.
// The engine only touches it once, at game start, to snapshot the items.
type Catalog interface {
	Count() (int64, error)
	List() ([]models.Quiz, error)
}

type OutcomeKind string

const (
	// OutcomeNextQuestion carries the question to ask next.
	OutcomeNextQuestion OutcomeKind = "next_question"
	// OutcomeCheckResult carries the verdict for a submitted answer.
	OutcomeCheckResult OutcomeKind = "check_result"
	// OutcomeGameOver reports the final score of a finished game.
	OutcomeGameOver OutcomeKind = "game_over"
)

// Outcome is what the engine hands to the presentation layer. Exactly
// one of the three kinds is produced per call; the unused fields stay
// zero.
type Outcome struct {
	Kind    OutcomeKind  `json:"kind"`
	Quiz    *models.Quiz `json:"quiz,omitempty"`
	Answer  string       `json:"answer,omitempty"`
	Correct bool         `json:"correct"`
	Score   int          `json:"score"`
}

type GameErrorKind string

const (
	// ErrKindCatalogUnavailable means a catalog call failed; nothing
	// was persisted for this request.
	ErrKindCatalogUnavailable GameErrorKind = "catalog_unavailable"
	// ErrKindInvalidGameState means Evaluate was called with no active
	// game, or with a corrupted session record. The caller should
	// restart via StartOrResume.
	ErrKindInvalidGameState GameErrorKind = "invalid_game_state"
)

// GameError is a failure from a game engine operation, tagged with a
// kind so callers branch on the tag instead of the error's type.
type GameError struct {
	Kind GameErrorKind
	Msg  string
	Err  error
}

func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *GameError) Unwrap() error {
	return e.Err
}

func newGameError(kind GameErrorKind, msg string, err error) *GameError {
	return &GameError{Kind: kind, Msg: msg, Err: err}
}

// GameService runs the random-play game: it walks one anonymous visitor
// through every quiz in a shuffled order, tracking the score across
// requests in the session store.
type GameService struct {
	catalog Catalog
	store   GameSessionStore
	// locks holds one mutex per visitor ever seen and never evicts:
	// removing an entry another request may still be holding or
	// waiting on would let two checks for the same visitor run
	// unserialized. The cost is one pointer per visitor for the life
	// of the process.
	locks sync.Map // visitorID -> *sync.Mutex
}

func NewGameService(catalog Catalog, store GameSessionStore) *GameService {
	return &GameService{
		catalog: catalog,
		store:   store,
	}
}

// visitorLock serializes read-modify-write cycles per visitor, so two
// concurrent checks for the same visitor cannot both see Pending=true
// and double-count a point. Visitors never share state, so there is no
// coordination across keys.
func (s *GameService) visitorLock(visitorID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(visitorID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// StartOrResume serves the next question of the visitor's game, starting
// a fresh game if none is active. A finished game is reported as
// GameOver exactly once and cleared in the same call.
func (s *GameService) StartOrResume(ctx context.Context, visitorID string) (*Outcome, error) {
	mu := s.visitorLock(visitorID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.store.Get(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	if session != nil && !session.Valid() {
		// A corrupted record would wedge the visitor on every visit;
		// drop it and start over instead of serving from an untrusted
		// cursor.
		if err := s.store.Delete(ctx, visitorID); err != nil {
			return nil, err
		}
		log.Printf("Dropped corrupted session for visitor %s", visitorID)
		session = nil
	}

	if session == nil {
		count, err := s.catalog.Count()
		if err != nil {
			return nil, newGameError(ErrKindCatalogUnavailable, "failed to count quizzes", err)
		}

		if count == 0 {
			// Nothing to ask; no session is persisted, so a quiz
			// added later starts a full game.
			return &Outcome{Kind: OutcomeGameOver, Score: 0}, nil
		}

		items, err := s.catalog.List()
		if err != nil {
			return nil, newGameError(ErrKindCatalogUnavailable, "failed to list quizzes", err)
		}

		session = &GameSession{
			Order: shuffledOrder(len(items)),
			Items: items,
			Score: 0,
		}
		log.Printf("Started random-play game for visitor %s with %d quizzes", visitorID, len(items))
	}

	if session.Finished() {
		if err := s.store.Delete(ctx, visitorID); err != nil {
			return nil, err
		}
		log.Printf("Random-play game finished for visitor %s with score %d", visitorID, session.Score)
		return &Outcome{Kind: OutcomeGameOver, Score: session.Score}, nil
	}

	// Arm the reload guard: the upcoming check for this question has
	// not been committed to the score yet.
	session.Pending = true
	if err := s.store.Put(ctx, visitorID, session); err != nil {
		return nil, err
	}

	return &Outcome{
		Kind:  OutcomeNextQuestion,
		Quiz:  session.CurrentQuiz(),
		Score: session.Score,
	}, nil
}

// Evaluate checks a submitted answer against the current question.
//
// A correct answer commits one point, but only when the reload guard is
// still armed; a reload of the result page repeats the check without
// touching the score. A wrong answer ends the game immediately and the
// session is cleared, the reported score being the count of prior
// correct answers.
func (s *GameService) Evaluate(ctx context.Context, visitorID, answer string) (*Outcome, error) {
	mu := s.visitorLock(visitorID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.store.Get(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, newGameError(ErrKindInvalidGameState, "no active game for visitor", nil)
	}

	if !session.Valid() || session.Finished() {
		// Corrupted or already-completed session; fail closed rather
		// than guess which question the cursor means.
		return nil, newGameError(ErrKindInvalidGameState,
			fmt.Sprintf("session cursor %d out of range for %d questions", session.Score, len(session.Order)), nil)
	}

	quiz := session.CurrentQuiz()

	if !CheckAnswer(quiz, answer) {
		score := session.Score
		if err := s.store.Delete(ctx, visitorID); err != nil {
			return nil, err
		}
		log.Printf("Wrong answer ended random-play game for visitor %s at score %d", visitorID, score)
		return &Outcome{
			Kind:   OutcomeCheckResult,
			Quiz:   quiz,
			Answer: answer,
			Score:  score,
		}, nil
	}

	if session.Pending {
		session.Score++
		session.Pending = false
	}
	if err := s.store.Put(ctx, visitorID, session); err != nil {
		return nil, err
	}

	return &Outcome{
		Kind:    OutcomeCheckResult,
		Quiz:    quiz,
		Answer:  answer,
		Correct: true,
		Score:   session.Score,
	}, nil
}

// Abandon drops the visitor's game, if any.
func (s *GameService) Abandon(ctx context.Context, visitorID string) error {
	mu := s.visitorLock(visitorID)
	mu.Lock()
	defer mu.Unlock()

	return s.store.Delete(ctx, visitorID)
}
