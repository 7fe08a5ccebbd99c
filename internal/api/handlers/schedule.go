package handlers

import (
	"dvpr-route-scheduler/internal/api/dto"
	"dvpr-route-scheduler/internal/assembler"
	"dvpr-route-scheduler/internal/scheduler"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"
)

// ScheduleHandler serves POST /schedule: assemble a distance matrix
// for the requested catalogue ids and run the route scheduler against
// it.
type ScheduleHandler struct {
	Assembler    *assembler.Assembler
	AroundScope  float64
	MaxIteration int
}

func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := validateScheduleRequest(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// A fresh RNG per request keeps local search independent across
	// concurrent requests — the scheduler holds no shared mutable state.
	rs := scheduler.New(h.AroundScope, h.MaxIteration, rand.New(rand.NewSource(time.Now().UnixNano())))

	reply, err := h.Assembler.Schedule(r.Context(), rs, &assembler.ScheduleRequest{
		OrderAddress: req.OrderAddress,
		OrderItems:   req.Items,
		SupplierIDs:  req.SupplierIDs,
		RiderIDs:     req.RiderIDs,
		NumDeliverer: req.NumDeliverer,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "schedule: "+err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toScheduleReply(reply))
}

func validateScheduleRequest(req *dto.ScheduleRequest) error {
	if len(req.Items) == 0 {
		return errors.New("items must not be empty")
	}
	if len(req.SupplierIDs) == 0 {
		return errors.New("supplier_ids must not be empty")
	}
	if len(req.RiderIDs) == 0 {
		return errors.New("rider_ids must not be empty")
	}
	if req.NumDeliverer <= 0 {
		return errors.New("num_deliverer must be positive")
	}
	return nil
}

func toScheduleReply(reply *scheduler.Reply) dto.ScheduleReply {
	rows := make([]dto.ScheduleRouteRow, len(reply.Route))
	for i, entry := range reply.Route {
		rows[i] = dto.ScheduleRouteRow{SupplierID: entry.SupplierID, Items: entry.Items}
	}
	return dto.ScheduleReply{DelivererID: reply.DelivererID, Route: rows}
}
