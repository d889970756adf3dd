// SPDX-License-Identifier: EPL-2.0

// Package scheduler multiplexes sound-play requests onto a fixed pool of
// mixer channels.
//
// A Scheduler reserves a contiguous range of channels from a Backend and
// hands them out in round-robin order. Every channel has at most one Slot,
// the bookkeeping record of the sound playing there.
//
// # Allocation
//
// Play looks only at the channel under the cursor. If that channel is idle
// the sound starts there and the cursor moves on. If it is busy nothing is
// played: instead every priority-0 channel already playing the very same
// sound is stopped, and the cursor still moves on. The scheduler never
// preempts a busy channel for a new request, so a request (of any priority)
// can be dropped when the pool is saturated. Callers retry or accept the drop.
//
// # Priorities
//
//   - PriorityLow (0): evictable, stopped by Stop and by duplicate pruning
//   - PriorityMedium (1), PriorityHigh (2): ignored by Stop
//
// StopAll, StopAllExcept, StopByName and StopByOwner ignore priority.
//
// # Reconciliation
//
// The scheduler does no background polling. Reconcile asks the backend which
// channels went idle and clears their slots; call it once per tick:
//
//	for running {
//	    sched.Reconcile()
//	    if hit {
//	        sched.Play(explosion, scheduler.WithName("boom"), scheduler.WithPan(x))
//	    }
//	}
//
// Without it finished channels keep looking busy and the pool shrinks.
//
// # Concurrency
//
// A Scheduler is not safe for concurrent use; drive it from one goroutine,
// typically the game or event loop. Several schedulers may share one
// backend as long as their reserved ranges do not overlap, which Reserve
// guarantees.
package scheduler
