package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(testOptions(), store, testRuntime(), "tester", nil)

	if !strings.Contains(m.View(), "New game") {
		t.Fatal("session should start at the menu")
	}

	// Menu -> game
	s := send(t, m, tea.KeyMsg{Type: tea.KeyEnter}).(SessionModel)
	if s.screen != screenGame {
		t.Fatalf("screen = %v, want game", s.screen)
	}

	// Play one move, then back to the menu; the game is recorded.
	s = send(t, s, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyEsc}).(SessionModel)
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}
	if !strings.Contains(s.View(), "Best: 4") {
		t.Error("menu should show the new best score")
	}

	// Menu -> scores via tab
	s = send(t, s, tea.KeyMsg{Type: tea.KeyTab}).(SessionModel)
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	if !strings.Contains(s.View(), "tester") {
		t.Error("scoreboard should list the recorded game")
	}

	s = send(t, s, runeKey('b')).(SessionModel)
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	_, cmd := s.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit from menu should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit from menu should produce tea.QuitMsg")
	}
}

func TestSessionMenuNavigation(t *testing.T) {
	m := NewSessionModel(testOptions(), nil, testRuntime(), "tester", nil)

	// Down once, select: High scores
	s := send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}).(SessionModel)
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	if !strings.Contains(s.View(), "No scores recorded yet") {
		t.Error("scoreboard without a store should be empty")
	}
}

func TestSessionResizePropagates(t *testing.T) {
	m := NewSessionModel(testOptions(), nil, testRuntime(), "tester", nil)

	s := send(t, m, tea.WindowSizeMsg{Width: 120, Height: 50}, tea.KeyMsg{Type: tea.KeyEnter}).(SessionModel)
	if s.config.ScreenW != 120 || s.config.ScreenH != 50 {
		t.Errorf("config = %dx%d, want 120x50", s.config.ScreenW, s.config.ScreenH)
	}
	if s.game.config.ScreenW != 120 {
		t.Errorf("game width = %d, want 120", s.game.config.ScreenW)
	}
}

func TestScoreboardLayouts(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore(storage.Result{Size: 4, Score: 512, MaxTile: 64, Moves: 80, Player: "ann"}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	wide := NewScoreboardModel(store, 4, 120, 30)
	if !wide.showSidebar {
		t.Error("wide scoreboard should show the sidebar")
	}
	if view := wide.View(); !strings.Contains(view, "Best: 512") || !strings.Contains(view, "ann") {
		t.Errorf("wide view missing stats or rows:\n%s", view)
	}

	narrow := NewScoreboardModel(store, 4, 60, 30)
	if narrow.showSidebar {
		t.Error("narrow scoreboard should not show the sidebar")
	}
	if view := narrow.View(); !strings.Contains(view, "Games: 1") {
		t.Errorf("narrow view missing summary:\n%s", view)
	}
}
