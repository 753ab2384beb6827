// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: name, institution, experience
  - MoveRequest: label, target_index (drag reorder)
  - TapRequest: index (tap-to-swap)
  - RankRequest: label, rank (numeric rank buttons)

# Response Types

Types for JSON responses:

  - LoginResponse: session_token, clinician_id
  - SessionResponse: identity plus progress
  - QuestionView: one question with items, aliases, and live state
  - QuestionSummary: image_id, index, answered
  - SubmitQuestionResponse: progress and next unanswered index
  - FinalizeResponse: saved count
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Clinician: rater identity record
  - RankingRow: one persisted judgment (rankings + shown order)
  - SessionRecord: a rater's full local session
  - Item: one ranking candidate as displayed

# Constants

Experience tiers:

	ExperienceJunior = "less_than_5"
	ExperienceSenior = "5_or_more"

Enhancement models (canonical order):

	Models = ["DDPM", "VQGAN", "UNET", "Pix2Pix", "BBDM"]

# Asset Addressing

EnhancedImageFilename maps a model and image number to the stored asset
name: BBDM uses 0-indexed x_{n-1}_0.png, all other models 1-indexed
output_{n}.png. This mapping must be preserved exactly so ranked items
resolve to the correct images.
*/
package models
