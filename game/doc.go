// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package game implements the client-side session and attempt engine.

A Controller moves between Idle and Running. StartSession arms a 60 second
countdown; when it reaches zero the session ends, one attempt is used and
the session's clicks go to the Reporter on a separate goroutine.

Two gates block play. The ad gate may only open with no attempts left; it
counts down 10 seconds before CanCloseAdGate reports true, and closing it
refills the attempts to 3. The team-select gate is active until a team is
chosen, usually from the outcome of a TeamQuiz.

Operations whose preconditions do not hold are ignored. Timers follow
cancel-before-arm, and every tick checks that its timer is still current.
*/
package game
