package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/baba/internal/content"
	"github.com/abhisek/baba/internal/store"
)

func TestNew(t *testing.T) {
	s := New("abc")
	assert.Equal(t, "abc", s.ID)
	assert.Nil(t, s.LastExplanation)
	assert.Nil(t, s.LastWriting)
	assert.Empty(t, s.LastTopic)
	assert.NotNil(t, s.QuizHistory)
	assert.Empty(t, s.QuizHistory)

	generated := New("")
	assert.Len(t, generated.ID, 36)
}

func TestSetExplanationOverwrites(t *testing.T) {
	s := New("s1")
	first := &content.Explanation{EnglishExplanation: "first"}
	second := &content.Explanation{EnglishExplanation: "second"}

	s.SetExplanation(first, "gravity")
	s.SetExplanation(second, "entropy")

	assert.Same(t, second, s.LastExplanation)
	assert.Equal(t, "entropy", s.LastTopic)
}

func TestSetWritingUsesMarker(t *testing.T) {
	s := New("s1")
	s.SetExplanation(&content.Explanation{EnglishExplanation: "E"}, "gravity")
	s.SetWriting(&content.WritingResult{ImprovedText: "Improved."})

	assert.Equal(t, "writing improvement", s.LastTopic)
	assert.NotNil(t, s.LastExplanation, "writing must not clear the explanation")
}

func TestRecordAnswerAppends(t *testing.T) {
	s := New("s1")
	s.RecordAnswer(0, 2, true)
	s.RecordAnswer(1, 0, false)
	s.RecordAnswer(0, 2, true)

	require.Len(t, s.QuizHistory, 3)
	assert.Equal(t, QuizAttempt{QuestionIndex: 1, UserAnswer: 0, IsCorrect: false}, s.QuizHistory[1])

	p := s.Progress()
	assert.Equal(t, 3, p.TotalAttempts)
	assert.Equal(t, 2, p.CorrectCount)
	assert.InDelta(t, 2.0/3.0, p.Accuracy, 1e-9)
}

func TestClearKeepsID(t *testing.T) {
	s := New("keep-me")
	s.SetExplanation(&content.Explanation{EnglishExplanation: "E"}, "gravity")
	s.SetWriting(&content.WritingResult{ImprovedText: "W"})
	s.RecordAnswer(0, 1, true)
	s.AddMessage("hello")

	s.Clear()

	assert.Equal(t, "keep-me", s.ID)
	assert.Nil(t, s.LastExplanation)
	assert.Nil(t, s.LastWriting)
	assert.Empty(t, s.LastTopic)
	assert.Empty(t, s.QuizHistory)
	assert.Empty(t, s.History.Messages)
	assert.Zero(t, s.InteractionCount)
}

func TestMessageHistoryKeepsLastFive(t *testing.T) {
	var h MessageHistory
	for i := 1; i <= 7; i++ {
		h.Add(fmt.Sprintf("msg %d", i))
	}
	assert.Equal(t, []string{"msg 3", "msg 4", "msg 5", "msg 6", "msg 7"}, h.Recent())
}

func TestContextSummary(t *testing.T) {
	var h MessageHistory
	assert.Equal(t, "", h.ContextSummary())

	h.Add("What is photosynthesis?")
	h.Add(strings.Repeat("x", 120))

	want := "Recent conversation context:\n" +
		"1. What is photosynthesis?\n" +
		"2. " + strings.Repeat("x", 100) + "...\n"
	assert.Equal(t, want, h.ContextSummary())
}

func TestContextSummaryTruncatesRunes(t *testing.T) {
	var h MessageHistory
	h.Add(strings.Repeat("ع", 101))
	assert.Equal(t, "Recent conversation context:\n1. "+strings.Repeat("ع", 100)+"...\n", h.ContextSummary())
}

func testRepositories(t *testing.T) map[string]Repository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return map[string]Repository{
		"memory": NewMemoryRepository(),
		"sqlite": NewRecordRepository(st.SessionRepo()),
	}
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			s := New("sess-1")
			s.SetExplanation(&content.Explanation{
				EnglishExplanation: "Photosynthesis converts light.",
				GulfExample:        "Date palms.",
				KeyTerms:           []string{"chlorophyll"},
			}, "photosynthesis")
			s.RecordAnswer(0, 1, false)
			s.AddMessage("what is photosynthesis")
			require.NoError(t, repo.Save(ctx, s))

			got, err := repo.Get(ctx, "sess-1")
			require.NoError(t, err)
			assert.Equal(t, "photosynthesis", got.LastTopic)
			require.NotNil(t, got.LastExplanation)
			assert.Equal(t, "Date palms.", got.LastExplanation.GulfExample)
			assert.Equal(t, s.QuizHistory, got.QuizHistory)
			assert.Equal(t, []string{"what is photosynthesis"}, got.History.Recent())
			assert.Equal(t, 1, got.InteractionCount)
			assert.WithinDuration(t, s.CreatedAt, got.CreatedAt, time.Second)

			got.LastTopic = "changed"
			again, err := repo.Get(ctx, "sess-1")
			require.NoError(t, err)
			assert.Equal(t, "photosynthesis", again.LastTopic, "unsaved changes must not leak")

			require.NoError(t, repo.Delete(ctx, "sess-1"))
			_, err = repo.Get(ctx, "sess-1")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.NoError(t, repo.Delete(ctx, "sess-1"))
		})
	}
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	s, err := GetOrCreate(ctx, repo, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", s.ID)

	s.LastTopic = "gravity"
	require.NoError(t, repo.Save(ctx, s))

	again, err := GetOrCreate(ctx, repo, "new")
	require.NoError(t, err)
	assert.Equal(t, "gravity", again.LastTopic)
}

func TestLockerSerializes(t *testing.T) {
	l := NewLocker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("same")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, l.Len())
}

func TestLockerIndependentIDs(t *testing.T) {
	l := NewLocker()
	unlockA := l.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
	unlockA()
}
