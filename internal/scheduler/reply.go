package scheduler

import "dvpr-route-scheduler/internal/domain"

// encodeReply emits the canonical reply structure. An
// empty route (no rider assigned, no suppliers visited) yields a
// zero-value Reply — no DelivererID, no route entries.
func encodeReply(route *domain.Route) *Reply {
	reply := &Reply{Route: make([]RouteEntry, 0, len(route.Suppliers))}

	if route.Rider != nil {
		reply.DelivererID = route.Rider.ExternalID
	}

	for _, s := range route.Suppliers {
		pick := route.ItemsForEachSupplier[s.ID]
		items := make(map[string]float64, len(pick))
		for item, qty := range pick {
			items[item] = qty
		}
		reply.Route = append(reply.Route, RouteEntry{SupplierID: s.ID, Items: items})
	}

	return reply
}
