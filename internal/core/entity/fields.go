// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

// Global field names for validation
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldBirthDate   = "birth_date"
	FieldCategoryIDs = "category_ids"
	FieldOwnerIDs    = "owner_ids"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldCountryID   = "country_id"
	FieldTitle       = "title"
	FieldText        = "text"
	FieldRating      = "rating"
	FieldPokemonID   = "pokemon_id"
	FieldReviewerID  = "reviewer_id"
)

// Maximum text lengths, mirrored by the SQL column types.
const (
	MaxNameLen  = 100
	MaxTitleLen = 200
	MaxTextLen  = 2000
)
