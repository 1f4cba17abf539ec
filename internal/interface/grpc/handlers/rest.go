package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	lastclickv1 "github.com/lastclick-network/lastclick/pkg/api/v1"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type restGateway struct {
	svc lastclickv1.GameServiceServer
}

// NewRestGateway exposes the game service as JSON over plain http. Requests
// are served by the same handler as the gRPC ones, with the caller identity
// header forwarded as incoming metadata.
func NewRestGateway(svc lastclickv1.GameServiceServer) http.Handler {
	gw := &restGateway{svc}

	router := mux.NewRouter()
	v1 := router.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/registry", gw.initializeRegistry).Methods(http.MethodPost)
	v1.HandleFunc("/registry", gw.getRegistry).Methods(http.MethodGet)
	v1.HandleFunc("/rounds", gw.createRound).Methods(http.MethodPost)
	v1.HandleFunc("/rounds", gw.listRounds).Methods(http.MethodGet)
	v1.HandleFunc("/rounds/active", gw.getActiveRound).Methods(http.MethodGet)
	v1.HandleFunc("/rounds/{id:[0-9]+}", gw.getRound).Methods(http.MethodGet)
	v1.HandleFunc("/rounds/{id:[0-9]+}/stakes", gw.submitStake).Methods(http.MethodPost)
	v1.HandleFunc("/rounds/{id:[0-9]+}/claim", gw.claimReward).Methods(http.MethodPost)
	v1.HandleFunc("/rounds/{id:[0-9]+}/finalize", gw.finalizeCheck).Methods(http.MethodPost)
	v1.HandleFunc("/rounds/{id:[0-9]+}/events", gw.getRoundEvents).Methods(http.MethodGet)
	// Account ids may contain slashes, as vault custody accounts do.
	v1.HandleFunc("/accounts/{id:.+}/faucet", gw.faucet).Methods(http.MethodPost)
	v1.HandleFunc("/accounts/{id:.+}", gw.getBalance).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, status.Error(codes.NotFound, "route not found"))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{"method not allowed"})
	})

	return router
}

func (gw *restGateway) initializeRegistry(w http.ResponseWriter, r *http.Request) {
	resp, err := gw.svc.InitializeRegistry(
		withCaller(r), &lastclickv1.InitializeRegistryRequest{},
	)
	reply(w, resp, err)
}

func (gw *restGateway) getRegistry(w http.ResponseWriter, r *http.Request) {
	resp, err := gw.svc.GetRegistry(r.Context(), &lastclickv1.GetRegistryRequest{})
	reply(w, resp, err)
}

func (gw *restGateway) createRound(w http.ResponseWriter, r *http.Request) {
	req := &lastclickv1.CreateRoundRequest{}
	if err := decodeBody(r, req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := gw.svc.CreateRound(withCaller(r), req)
	reply(w, resp, err)
}

func (gw *restGateway) listRounds(w http.ResponseWriter, r *http.Request) {
	resp, err := gw.svc.ListRounds(r.Context(), &lastclickv1.ListRoundsRequest{})
	reply(w, resp, err)
}

func (gw *restGateway) getActiveRound(w http.ResponseWriter, r *http.Request) {
	resp, err := gw.svc.GetActiveRound(r.Context(), &lastclickv1.GetActiveRoundRequest{})
	reply(w, resp, err)
}

func (gw *restGateway) getRound(w http.ResponseWriter, r *http.Request) {
	roundId, err := parseRoundId(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := gw.svc.GetRound(r.Context(), &lastclickv1.GetRoundRequest{RoundId: roundId})
	reply(w, resp, err)
}

func (gw *restGateway) submitStake(w http.ResponseWriter, r *http.Request) {
	roundId, err := parseRoundId(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req := &lastclickv1.SubmitStakeRequest{}
	if err := decodeBody(r, req); err != nil {
		writeError(w, err)
		return
	}
	req.RoundId = roundId

	resp, err := gw.svc.SubmitStake(withCaller(r), req)
	reply(w, resp, err)
}

func (gw *restGateway) claimReward(w http.ResponseWriter, r *http.Request) {
	roundId, err := parseRoundId(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := gw.svc.ClaimReward(
		withCaller(r), &lastclickv1.ClaimRewardRequest{RoundId: roundId},
	)
	reply(w, resp, err)
}

func (gw *restGateway) finalizeCheck(w http.ResponseWriter, r *http.Request) {
	roundId, err := parseRoundId(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := gw.svc.FinalizeCheck(
		r.Context(), &lastclickv1.FinalizeCheckRequest{RoundId: roundId},
	)
	reply(w, resp, err)
}

func (gw *restGateway) getRoundEvents(w http.ResponseWriter, r *http.Request) {
	roundId, err := parseRoundId(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := gw.svc.GetRoundEvents(
		r.Context(), &lastclickv1.GetRoundEventsRequest{RoundId: roundId},
	)
	reply(w, resp, err)
}

func (gw *restGateway) getBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := gw.svc.GetBalance(
		r.Context(), &lastclickv1.GetBalanceRequest{Account: mux.Vars(r)["id"]},
	)
	reply(w, resp, err)
}

func (gw *restGateway) faucet(w http.ResponseWriter, r *http.Request) {
	req := &lastclickv1.FaucetRequest{}
	if err := decodeBody(r, req); err != nil {
		writeError(w, err)
		return
	}
	req.Account = mux.Vars(r)["id"]

	resp, err := gw.svc.Faucet(r.Context(), req)
	reply(w, resp, err)
}

type errorBody struct {
	Error string `json:"error"`
}

func withCaller(r *http.Request) context.Context {
	ctx := r.Context()
	caller := r.Header.Get(lastclickv1.CallerIdentityKey)
	if len(caller) <= 0 {
		return ctx
	}
	return metadata.NewIncomingContext(
		ctx, metadata.Pairs(lastclickv1.CallerIdentityKey, caller),
	)
}

func parseRoundId(r *http.Request) (uint64, error) {
	roundId, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, "invalid round id")
	}
	return roundId, nil
}

// decodeBody accepts an empty body as a request with all fields unset.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return status.Error(
			codes.InvalidArgument, strings.TrimPrefix(err.Error(), "json: "),
		)
	}
	return nil
}

func reply(w http.ResponseWriter, resp interface{}, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, err error) {
	st, ok := status.FromError(err)
	if !ok {
		st = status.New(codes.Internal, err.Error())
	}
	writeJSON(w, httpStatus(st.Code()), errorBody{st.Message()})
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}
