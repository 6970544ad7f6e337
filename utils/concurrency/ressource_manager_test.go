package concurrency

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConcurrency(t *testing.T) {

	t.Run("NoError", func(t *testing.T) {

		acc := make([]int, 8)

		ressources := make([]bool, 4)

		rm := NewRessourceManager(ressources)

		for i := range acc {
			rm.Run(func(r bool) (err error) {
				acc[i]++
				return
			})
		}

		require.NoError(t, rm.Wait())

		for i := range acc {
			require.Equal(t, acc[i], 1)
		}
	})

	t.Run("WithError", func(t *testing.T) {
		acc := make([]int, 8)

		ressources := make([]bool, 4)

		rm := NewRessourceManager(ressources)

		for i := range acc {
			rm.Run(func(r bool) (err error) {
				acc[i]++
				if i == 2 {
					return fmt.Errorf("something bad happened")
				}

				return
			})
		}

		require.Error(t, rm.Wait())
	})
}

func TestLimiter(t *testing.T) {
	var inFlight, maxInFlight int32
	var mu sync.Mutex

	lim := NewLimiter(3)
	for i := 0; i < 50; i++ {
		lim.Run(func(struct{}) error {
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, lim.Wait())
	require.LessOrEqual(t, maxInFlight, int32(3))
}
