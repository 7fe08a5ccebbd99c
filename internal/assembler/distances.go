package assembler

import (
	"context"
	"dvpr-route-scheduler/internal/ports"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// buildFlatDistances fetches every distance row the oracle's flat
// layout needs — order->suppliers, then for each supplier, its
// distances to every higher-indexed supplier and to every rider — and
// concatenates them in the exact order the distance oracle expects.
// Row fetches (one per origin: the order point, then each supplier)
// run concurrently behind a bounded semaphore, since each is an
// independent call to the distance provider.
func (a *Assembler) buildFlatDistances(
	ctx context.Context,
	orderAddress string,
	suppliers []ports.SupplierRecord,
	riders []ports.RiderRecord,
) ([]float64, error) {
	n := len(suppliers)

	supplierAddrs := make([]string, n)
	for i, s := range suppliers {
		supplierAddrs[i] = s.Address
	}
	riderAddrs := make([]string, len(riders))
	for i, r := range riders {
		riderAddrs[i] = r.Address
	}

	// rows[0] is the order's row (order->suppliers); rows[1+p] is
	// supplier p's row (supplier_p -> higher suppliers, then riders).
	rows := make([][]float64, n+1)
	errs := make([]error, n+1)

	sem := semaphore.NewWeighted(maxConcurrentRows)
	var wg sync.WaitGroup

	fetchRow := func(idx int, origin string, destinations []string) {
		defer wg.Done()
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[idx] = fmt.Errorf("acquire row slot: %w", err)
			return
		}
		defer sem.Release(1)

		if len(destinations) == 0 {
			rows[idx] = nil
			return
		}

		results, err := a.Distances.GetDistances(ctx, origin, destinations)
		if err != nil {
			errs[idx] = fmt.Errorf("get distances from %q: %w", origin, err)
			return
		}

		row := make([]float64, len(destinations))
		for i, dest := range destinations {
			r, ok := results[dest]
			if !ok {
				errs[idx] = fmt.Errorf("no distance result for %q -> %q", origin, dest)
				return
			}
			row[i] = float64(r.DistanceMeters)
		}
		rows[idx] = row
	}

	wg.Add(1)
	go fetchRow(0, orderAddress, supplierAddrs)

	for p := 0; p < n; p++ {
		wg.Add(1)
		destinations := make([]string, 0, n-p-1+len(riderAddrs))
		destinations = append(destinations, supplierAddrs[p+1:]...)
		destinations = append(destinations, riderAddrs...)
		go fetchRow(1+p, supplierAddrs[p], destinations)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	flat := make([]float64, 0, n+n*len(riders)+n*(n-1)/2)
	flat = append(flat, rows[0]...)
	for p := 0; p < n; p++ {
		flat = append(flat, rows[1+p]...)
	}

	return flat, nil
}
