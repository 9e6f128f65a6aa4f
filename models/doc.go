// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - SubmitSessionRequest: uid, team, sessionClicks, totalLocalClicks

The numeric fields are LooseInt, which accepts a JSON number or a numeric
string and keeps its integral part. Anything else decodes as not valid
rather than failing the whole body. uid and team are LooseString: a
non-string value decodes to "".

# Response Types

  - LeaderboardResponse: ok plus the embedded LeaderboardView
  - ErrorResponse: ok (always false) and error

# Domain Types

  - ParticipantRecord: one participant's aggregate, as stored
  - LeaderboardEntry: one row of the public top list
  - MyRank: the requesting participant's position in the full order
  - LeaderboardView: top list plus optional MyRank

# Constants

Teams:

	TeamInside  = "inside"
	TeamOutside = "outside"

CoerceTeam maps anything other than the exact string "outside" to inside.

Top list length:

	TopN = 10
*/
package models
