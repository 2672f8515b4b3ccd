package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/somnolab/somnia/internal/error_values"
	"github.com/somnolab/somnia/internal/service"
	"github.com/somnolab/somnia/pkg/entity"
	"github.com/somnolab/somnia/pkg/httputil"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LogSleepRequest struct {
	SleepTime time.Time `json:"sleep_time"`
	WakeTime  time.Time `json:"wake_time"`
}

type LogSleepResponse struct {
	Log     *entity.SleepLog `json:"log"`
	Balance int              `json:"balance"`
}

type WeeklySummaryResponse struct {
	Stats *entity.WeeklyStats `json:"stats"`
	Logs  []entity.SleepLog   `json:"logs"`
}

type RedeemResponse struct {
	Redemption *entity.Redemption `json:"redemption"`
	Balance    int                `json:"balance"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserExists):
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("registering error: invalid credentials format")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid name or password format", err)
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such name doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) LogSleep(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("log sleep error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req LogSleepRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("log sleep error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	sleepLog, balance, err := s.sleepService.LogSleep(ctx, uid, &service.LogSleepRequest{
		SleepTime: req.SleepTime,
		WakeTime:  req.WakeTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("log sleep error: missing sleep or wake time")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "both sleep and wake times are required", nil)
		case errors.Is(err, errorvalues.ErrLogExistsToday):
			logger.Error("log sleep error: log for today already exists")
			httputil.WriteErrorResponse(w, http.StatusConflict, "sleep already logged today", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound), errors.Is(err, errorvalues.ErrProfileNotFound):
			logger.Error("log sleep error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("log sleep error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging sleep", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, LogSleepResponse{
		Log:     sleepLog,
		Balance: balance,
	})
	logger.Info("sleep logged", slog.Int("points_earned", sleepLog.PointsEarned))
}

func (s *Server) TodaysLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("today's log error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	sleepLog, err := s.sleepService.TodaysLog(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrLogNotFound) {
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no sleep logged today", nil)
			return
		}
		logger.Error("today's log error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting today's log", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"log": sleepLog})
}

func (s *Server) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("weekly summary error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	stats, logs, err := s.sleepService.WeeklySummary(ctx, uid)
	if err != nil {
		logger.Error("weekly summary error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building weekly summary", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, WeeklySummaryResponse{
		Stats: stats,
		Logs:  logs,
	})
	logger.Info("weekly summary provided")
}

func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	summary, err := s.sleepService.ProfileSummary(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			logger.Error("profile error: unexist profile")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "profile doesn't exist", nil)
			return
		}
		logger.Error("profile error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting profile", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("profile provided")
}

func (s *Server) ListRewards(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	rewards, err := s.rewardsService.ListRewards(ctx)
	if err != nil {
		logger.Error("listing rewards error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting rewards list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"rewards": rewards})
}

func (s *Server) RedeemReward(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("redeem error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	rewardID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("redeem error: invalid reward id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid reward id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	redemption, balance, err := s.rewardsService.Redeem(ctx, uid, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRewardNotFound):
			logger.Error("redeem error: unexist reward")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "reward doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrProfileNotFound):
			logger.Error("redeem error: unexist profile")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "profile doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrInsufficientPoints):
			logger.Error("redeem error: not enough points")
			httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "not enough points", nil)
		default:
			logger.Error("redeem error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while redeeming reward", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, RedeemResponse{
		Redemption: redemption,
		Balance:    balance,
	})
	logger.Info("reward redeemed", slog.String("reward_id", rewardID.String()))
}

func (s *Server) RedeemedRewards(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("redeemed rewards error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	redeemed, err := s.rewardsService.RedeemedRewards(ctx, uid)
	if err != nil {
		logger.Error("redeemed rewards error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting redeemed rewards", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"redeemed": redeemed})
}
