package channel_utils

import (
	"context"
	"sport-reel-generator/application/ports/outbound"
	"sync"
)

// MergeChannels fans the given channels into one that closes once all inputs are drained.
// Forwarding stops early when ctx is done so abandoned consumers do not strand the forwarders.
// When a submit fails no merged channel is returned, and forwarders already started are stopped.
func MergeChannels[T any](ctx context.Context, workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)
	stop := make(chan struct{})

	output := func(c <-chan T) {
		defer wg.Done()
		for {
			var val T
			select {
			case v, ok := <-c:
				if !ok {
					return
				}
				val = v
			case <-stop:
				return
			}

			select {
			case merged <- val:
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}

	wg.Add(len(channels))
	for i, c := range channels {
		ch := c
		err := workerPool.Submit(func() {
			output(ch)
		})
		if err != nil {
			// Release the slots of the forwarders that will never start.
			wg.Add(-(len(channels) - i))
			close(stop)
			return nil, err
		}
	}

	err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	})
	if err != nil {
		close(stop)
		return nil, err
	}

	return merged, nil
}
