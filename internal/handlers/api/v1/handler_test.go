package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/onekill0503/dnd-bot/internal/dice"
	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	v1 "github.com/onekill0503/dnd-bot/internal/handlers/api/v1"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/session"
	sessionmock "github.com/onekill0503/dnd-bot/internal/orchestrators/session/mock"
	"github.com/onekill0503/dnd-bot/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *sessionmock.MockService
	router      *gin.Engine
}

func (s *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = sessionmock.NewMockService(s.ctrl)

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		SessionService: s.mockService,
		Roller:         dice.NewRoller(&dice.Config{Roller: dice.NewScriptedRoller(3, 4, 17, 5)}),
	})
	s.Require().NoError(err)
	s.router = handler.Router()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decode(rec *httptest.ResponseRecorder, target any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), target))
}

func (s *HandlerTestSuite) TestStartSession() {
	created := testutils.CreateTestSession(4)
	s.mockService.EXPECT().
		StartSession(gomock.Any(), &session.StartSessionInput{
			VoiceChannelID: testutils.TestVoiceChannelID,
			CreatorID:      testutils.TestCreatorID,
			PartySize:      4,
			Theme:          "classic fantasy",
			Language:       "en",
		}).
		Return(&session.StartSessionOutput{Session: created, Welcome: "Welcome!"}, nil)

	rec := s.do(http.MethodPost, "/api/v1/sessions", `{
		"voiceChannelId": "vc-test-001",
		"creatorId": "user-creator",
		"partySize": 4,
		"theme": "classic fantasy",
		"language": "en"
	}`)

	s.Equal(http.StatusCreated, rec.Code)
	var body struct {
		Session struct {
			SessionID string `json:"sessionId"`
		} `json:"session"`
		Welcome string `json:"welcome"`
	}
	s.decode(rec, &body)
	s.Equal(created.SessionID, body.Session.SessionID)
	s.Equal("Welcome!", body.Welcome)
}

func (s *HandlerTestSuite) TestMalformedBodyIsInvalidArgument() {
	rec := s.do(http.MethodPost, "/api/v1/sessions", `{"voiceChannelId":`)

	s.Equal(http.StatusBadRequest, rec.Code)
	var body map[string]string
	s.decode(rec, &body)
	s.Equal("INVALID_ARGUMENT", body["code"])
}

func (s *HandlerTestSuite) TestDomainErrorsRenderCodeAndReason() {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
		reason string
	}{
		{name: "unknown session", err: errors.SessionNotFound("vc-9"), status: http.StatusNotFound, code: "NOT_FOUND", reason: "session_not_found"},
		{name: "party full", err: errors.PartyFull(4), status: http.StatusTooManyRequests, code: "RESOURCE_EXHAUSTED", reason: "party_full"},
		{name: "already acted", err: errors.AlreadyActed("u1"), status: http.StatusPreconditionFailed, code: "FAILED_PRECONDITION", reason: "already_acted"},
		{name: "round in progress", err: errors.RoundInProgress(2), status: http.StatusConflict, code: "ABORTED", reason: "round_in_progress"},
		{name: "not active", err: errors.NotActive("waiting"), status: http.StatusPreconditionFailed, code: "FAILED_PRECONDITION", reason: "not_active"},
		{name: "untagged failure", err: assert.AnError, status: http.StatusInternalServerError, code: "INTERNAL"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().
				TrackPlayerAction(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			rec := s.do(http.MethodPost, "/api/v1/sessions/vc-9/actions", `{"userId":"u1","actionText":"I look around"}`)

			s.Equal(tc.status, rec.Code)
			var body map[string]string
			s.decode(rec, &body)
			s.Equal(tc.code, body["code"])
			s.Equal(tc.reason, body["reason"])
			s.NotEmpty(body["message"])
		})
	}
}

func (s *HandlerTestSuite) TestTrackPlayerAction() {
	s.mockService.EXPECT().
		TrackPlayerAction(gomock.Any(), &session.TrackPlayerActionInput{
			SessionRef: "vc-1",
			UserID:     "u1",
			ActionText: "I attack the goblin",
		}).
		Return(&session.TrackPlayerActionOutput{
			Accepted:  true,
			AllActed:  false,
			Roll:      &game.AutomaticDiceRoll{Action: "Attack", DiceType: "1d20", Roll: game.DiceRoll{Rolls: []int{12}, Total: 15, Notation: "1d20+3"}},
			WaitingOn: []string{"u2"},
		}, nil)

	rec := s.do(http.MethodPost, "/api/v1/sessions/vc-1/actions", `{"userId":"u1","actionText":"I attack the goblin"}`)

	s.Equal(http.StatusAccepted, rec.Code)
	var body v1.TrackPlayerActionResponse
	s.decode(rec, &body)
	s.True(body.Accepted)
	s.False(body.AllActed)
	s.Equal([]string{"u2"}, body.WaitingOn)
	s.Require().NotNil(body.Roll)
	s.Equal(15, body.Roll.Roll.Total)
}

func (s *HandlerTestSuite) TestTrackPlayerAction_FinalActionResolvesRound() {
	gomock.InOrder(
		s.mockService.EXPECT().
			TrackPlayerAction(gomock.Any(), gomock.Any()).
			Return(&session.TrackPlayerActionOutput{Accepted: true, AllActed: true, WaitingOn: []string{}}, nil),
		s.mockService.EXPECT().
			ResolveRound(gomock.Any(), &session.ResolveRoundInput{SessionRef: "vc-1"}).
			Return(&session.ResolveRoundOutput{
				Narrative: "The goblin falls.",
				Round:     1,
				Resolved:  []string{"u1", "u2"},
			}, nil).
			Times(1),
	)

	rec := s.do(http.MethodPost, "/api/v1/sessions/vc-1/actions", `{"userId":"u2","actionText":"I greet the innkeeper"}`)

	s.Equal(http.StatusAccepted, rec.Code)
	var body v1.TrackPlayerActionResponse
	s.decode(rec, &body)
	s.True(body.AllActed)
	s.Require().NotNil(body.Resolution)
	s.Equal("The goblin falls.", body.Resolution.Narrative)
	s.Equal(1, body.Resolution.Round)
	s.Equal([]string{"u1", "u2"}, body.Resolution.Resolved)
}

func (s *HandlerTestSuite) TestTrackPlayerAction_ResolutionFailureKeepsAction() {
	s.mockService.EXPECT().
		TrackPlayerAction(gomock.Any(), gomock.Any()).
		Return(&session.TrackPlayerActionOutput{Accepted: true, AllActed: true}, nil)
	s.mockService.EXPECT().
		ResolveRound(gomock.Any(), gomock.Any()).
		Return(nil, errors.RoundInProgress(1))

	rec := s.do(http.MethodPost, "/api/v1/sessions/vc-1/actions", `{"userId":"u2","actionText":"I wait"}`)

	s.Equal(http.StatusAccepted, rec.Code)
	var body v1.TrackPlayerActionResponse
	s.decode(rec, &body)
	s.True(body.Accepted)
	s.Nil(body.Resolution)
}

func (s *HandlerTestSuite) TestResolveRound() {
	s.mockService.EXPECT().
		ResolveRound(gomock.Any(), &session.ResolveRoundInput{SessionRef: "session_vc-1"}).
		Return(&session.ResolveRoundOutput{
			Narrative: "The goblin falls.",
			Round:     2,
			Resolved:  []string{"u1", "u2"},
		}, nil)

	rec := s.do(http.MethodPost, "/api/v1/sessions/session_vc-1/continue", "")

	s.Equal(http.StatusOK, rec.Code)
	var body v1.ResolveRoundResponse
	s.decode(rec, &body)
	s.Equal("The goblin falls.", body.Narrative)
	s.Equal(2, body.Round)
	s.Equal([]string{"u1", "u2"}, body.Resolved)
}

func (s *HandlerTestSuite) TestGenerateEncounterWithoutBody() {
	s.mockService.EXPECT().
		GenerateEncounter(gomock.Any(), &session.GenerateEncounterInput{SessionRef: "vc-1"}).
		Return(&session.GenerateEncounterOutput{Encounter: "Three wolves circle."}, nil)

	rec := s.do(http.MethodPost, "/api/v1/sessions/vc-1/encounter", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Three wolves circle.")
}

func (s *HandlerTestSuite) TestAddCharacter() {
	pc := testutils.CreateTestCharacter("u1", "Brom")
	s.mockService.EXPECT().
		AddCharacter(gomock.Any(), &session.AddCharacterInput{
			SessionRef: "vc-1",
			UserID:     "u1",
			Name:       "Brom",
			Class:      "Fighter",
			Race:       "Human",
			Background: "Soldier",
		}).
		Return(&session.AddCharacterOutput{
			Character:        pc,
			SessionActivated: true,
			OpeningScene:     "Rain falls on the old road.",
			KnownClass:       true,
			KnownBackground:  true,
		}, nil)

	rec := s.do(http.MethodPost, "/api/v1/sessions/vc-1/characters",
		`{"userId":"u1","name":"Brom","class":"Fighter","race":"Human","background":"Soldier"}`)

	s.Equal(http.StatusCreated, rec.Code)
	var body v1.AddCharacterResponse
	s.decode(rec, &body)
	s.True(body.SessionActivated)
	s.Equal("Rain falls on the old road.", body.OpeningScene)
	s.Require().NotNil(body.Character)
	s.Equal("Brom", body.Character.Name)
}

func (s *HandlerTestSuite) TestEndSessionPassesRequestor() {
	s.mockService.EXPECT().
		EndSession(gomock.Any(), &session.EndSessionInput{SessionRef: "vc-1", RequestorID: "someone"}).
		Return(nil, errors.Forbidden("only the session creator can end the session"))

	rec := s.do(http.MethodDelete, "/api/v1/sessions/vc-1", "", v1.HeaderUserID, "someone")

	s.Equal(http.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), "forbidden")
}

func (s *HandlerTestSuite) TestHandlePlayerDeath() {
	s.mockService.EXPECT().
		HandlePlayerDeath(gomock.Any(), &session.HandlePlayerDeathInput{SessionRef: "vc-1", UserID: "u1", Cause: "a falling rock"}).
		Return(&session.HandlePlayerDeathOutput{
			Message:   "Brom has fallen. The adventure continues with Mira.",
			Survivors: []string{"Mira"},
		}, nil)

	rec := s.do(http.MethodPost, "/api/v1/sessions/vc-1/deaths", `{"userId":"u1","cause":"a falling rock"}`)

	s.Equal(http.StatusOK, rec.Code)
	var body v1.HandlePlayerDeathResponse
	s.decode(rec, &body)
	s.False(body.SessionEnded)
	s.Equal([]string{"Mira"}, body.Survivors)
}

func (s *HandlerTestSuite) TestUpdateCurrency() {
	pc := testutils.CreateTestCharacter("u1", "Brom")
	pc.Currency.Gold = 15
	s.mockService.EXPECT().
		UpdateCurrency(gomock.Any(), &session.UpdateCurrencyInput{
			SessionRef: "vc-1",
			UserID:     "u1",
			Delta:      game.Currency{Gold: 5, Silver: -2},
		}).
		Return(&session.CharacterOutput{Character: pc}, nil)

	rec := s.do(http.MethodPatch, "/api/v1/sessions/vc-1/characters/u1/currency", `{"gp":5,"sp":-2}`)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"gp":15`)
}

func (s *HandlerTestSuite) TestRemoveItemWithoutBodyRemovesStack() {
	pc := testutils.CreateTestCharacter("u1", "Brom")
	s.mockService.EXPECT().
		RemoveItem(gomock.Any(), &session.RemoveItemInput{SessionRef: "vc-1", UserID: "u1", ItemID: "item_1"}).
		Return(&session.CharacterOutput{Character: pc}, nil)

	rec := s.do(http.MethodDelete, "/api/v1/sessions/vc-1/characters/u1/items/item_1", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestMemoryRoutes() {
	s.mockService.EXPECT().
		UpdateQuest(gomock.Any(), &session.UpdateQuestInput{
			SessionRef: "vc-1",
			Quest:      "Find the lost bell",
			Status:     game.QuestActive,
			Progress:   "heard rumors",
		}).
		Return(&session.MemoryOutput{Context: "Active quests: Find the lost bell"}, nil)
	s.mockService.EXPECT().
		TrackNPCInteraction(gomock.Any(), &session.TrackNPCInteractionInput{
			SessionRef:  "vc-1",
			NPCName:     "Old Tam",
			Interaction: "sold a map",
		}).
		Return(&session.MemoryOutput{Context: "Old Tam: sold a map"}, nil)

	rec := s.do(http.MethodPost, "/api/v1/sessions/vc-1/memory/quests",
		`{"quest":"Find the lost bell","status":"active","progress":"heard rumors"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Find the lost bell")

	rec = s.do(http.MethodPost, "/api/v1/sessions/vc-1/memory/npcs", `{"npcName":"Old Tam","interaction":"sold a map"}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestExportTranscript() {
	active := testutils.CreateActiveTestSession("u1", "u2")
	s.mockService.EXPECT().
		GetStatus(gomock.Any(), &session.GetStatusInput{SessionRef: "vc-test-001"}).
		Return(&session.GetStatusOutput{Session: active}, nil)

	rec := s.do(http.MethodGet, "/api/v1/sessions/vc-test-001/transcript.pdf", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/pdf", rec.Header().Get("Content-Type"))
	s.True(strings.HasPrefix(rec.Body.String(), "%PDF"))
	s.Contains(rec.Header().Get("Content-Disposition"), active.SessionID)
}

func (s *HandlerTestSuite) TestRollDice() {
	rec := s.do(http.MethodPost, "/api/v1/dice/roll", `{"notation":"2d6+1"}`)

	s.Equal(http.StatusOK, rec.Code)
	var body v1.RollDiceResponse
	s.decode(rec, &body)
	s.Equal([]int{3, 4}, body.Roll.Rolls)
	s.Equal(8, body.Roll.Total)
	s.Equal("2d6+1: [3, 4] = 8", body.Display)
}

func (s *HandlerTestSuite) TestRollDiceAdvantage() {
	s.do(http.MethodPost, "/api/v1/dice/roll", `{"notation":"2d6"}`)

	rec := s.do(http.MethodPost, "/api/v1/dice/roll", `{"mode":"advantage","modifier":2}`)

	s.Equal(http.StatusOK, rec.Code)
	var body v1.RollDiceResponse
	s.decode(rec, &body)
	s.Equal([]int{17, 5}, body.Roll.Rolls)
	s.Equal(19, body.Roll.Total)
}

func (s *HandlerTestSuite) TestRollDiceInvalidNotation() {
	rec := s.do(http.MethodPost, "/api/v1/dice/roll", `{"notation":"lots of dice"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "invalid_dice_notation")
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestNewHandler_RequiresService(t *testing.T) {
	_, err := v1.NewHandler(&v1.HandlerConfig{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = v1.NewHandler(nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	handler, err := v1.NewHandler(&v1.HandlerConfig{SessionService: sessionmock.NewMockService(ctrl)})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil).WithContext(context.Background())
	rec := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
