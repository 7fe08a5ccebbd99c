package dto

// ScheduleRequest is the JSON wire shape of a schedule call, served
// over HTTP+JSON.
type ScheduleRequest struct {
	OrderAddress string             `json:"order_address"`
	Items        map[string]float64 `json:"items"`
	SupplierIDs  []int              `json:"supplier_ids"`
	RiderIDs     []int              `json:"rider_ids"`
	NumDeliverer int                `json:"num_deliverer"`
}

// ScheduleReply is the JSON wire shape of a schedule response.
type ScheduleReply struct {
	DelivererID int                `json:"deliverer_id"`
	Route       []ScheduleRouteRow `json:"route"`
}

// ScheduleRouteRow is one visited supplier and its pick list.
type ScheduleRouteRow struct {
	SupplierID int                `json:"supplier_id"`
	Items      map[string]float64 `json:"items"`
}
