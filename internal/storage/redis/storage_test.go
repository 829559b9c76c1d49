package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/reversi-arena/reversigo/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.FinishedSessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Identity tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "player-1", IsGuest: false, CreatedAt: time.Now()}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guest := &model.Player{ID: "guest-1", IsGuest: true}
	registered := &model.Player{ID: "registered-1", IsGuest: false}

	_ = s.storage.SavePlayer(s.ctx, guest)
	_ = s.storage.SavePlayer(s.ctx, registered)

	s.True(s.mini.TTL(playerKey(guest.ID)) > 0, "Guest identity should have TTL")
	s.Equal(time.Duration(0), s.mini.TTL(playerKey(registered.ID)), "Registered identity should not have TTL")
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{PlayerID: "player-1", Username: "alice", PasswordHash: "hash123"}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)
}

// Profile tests

func (s *StorageSuite) TestSaveAndGetProfile() {
	profile := &model.Profile{PlayerID: "player-1", Name: "Alice", Score: 4}

	err := s.storage.SaveProfile(s.ctx, profile)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetProfile(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.Name)
	s.Equal(4, retrieved.Score)
}

func (s *StorageSuite) TestGetProfileByName() {
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "player-1", Name: "Alice"})

	retrieved, err := s.storage.GetProfileByName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)
}

func (s *StorageSuite) TestGetProfileByNameNotRegistered() {
	_, err := s.storage.GetProfileByName(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrNotRegistered)
}

func (s *StorageSuite) TestRenameReleasesOldName() {
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "player-1", Name: "Alice"})
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "player-1", Name: "Alicia"})

	_, err := s.storage.GetProfileByName(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrNotRegistered)

	retrieved, err := s.storage.GetProfileByName(s.ctx, "Alicia")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)
}

func (s *StorageSuite) TestTopProfilesUsesLeaderboardRanking() {
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p1", Name: "Alice", Score: 2})
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p2", Name: "Bob", Score: 5})
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p3", Name: "Carol", Score: 1})

	top, err := s.storage.TopProfiles(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("Bob", top[0].Name)
	s.Equal("Alice", top[1].Name)
}

func (s *StorageSuite) TestTopProfilesReranksOnScoreChange() {
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p1", Name: "Alice", Score: 2})
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p2", Name: "Bob", Score: 5})
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p1", Name: "Alice", Score: 9})

	top, err := s.storage.TopProfiles(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal("Alice", top[0].Name)
}

func (s *StorageSuite) TestTopProfilesTieBreak() {
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p1", Name: "Alice", Score: 3})
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p2", Name: "Bob", Score: 3})
	_ = s.storage.SaveProfile(s.ctx, &model.Profile{PlayerID: "p3", Name: "Carol", Score: 3})

	// Equal scores come back in reverse member order, highest ID first
	top, err := s.storage.TopProfiles(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal(model.PlayerID("p3"), top[0].PlayerID)
	s.Equal(model.PlayerID("p2"), top[1].PlayerID)
	s.Equal(model.PlayerID("p1"), top[2].PlayerID)
}

func (s *StorageSuite) TestTopProfilesEmpty() {
	top, err := s.storage.TopProfiles(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(top)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.Session{
		ID:          "game-1",
		BlackPlayer: "p1",
		WhitePlayer: "p2",
		Board:       model.NewBoard(),
		Turn:        model.ColorBlack,
		Moves:       []model.Move{{Row: 2, Col: 3}},
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(model.ColorBlack, retrieved.Turn)
	s.Equal(session.Moves, retrieved.Moves)
	s.Equal(*session.Board, *retrieved.Board)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSessionTTLOnlyWhenFinished() {
	active := &model.Session{ID: "game-active", Board: model.NewBoard(), Turn: model.ColorBlack}
	finished := &model.Session{
		ID:     "game-done",
		Board:  model.NewBoard(),
		Turn:   model.ColorWhite,
		Result: &model.Result{Winner: model.ColorBlack, Black: 40, White: 24},
	}

	_ = s.storage.SaveSession(s.ctx, active)
	_ = s.storage.SaveSession(s.ctx, finished)

	s.Equal(time.Duration(0), s.mini.TTL(sessionKey(active.ID)), "Active session should not expire")
	s.True(s.mini.TTL(sessionKey(finished.ID)) > 0, "Finished session should have TTL")
}

// Active-session index tests

func (s *StorageSuite) TestActiveSessionIndex() {
	err := s.storage.SetActiveSession(s.ctx, "p1", "game-1")
	s.Require().NoError(err)

	gameID, err := s.storage.GetActiveSession(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), gameID)

	err = s.storage.ClearActiveSession(s.ctx, "p1")
	s.Require().NoError(err)

	_, err = s.storage.GetActiveSession(s.ctx, "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
}
