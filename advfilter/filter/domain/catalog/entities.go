package catalog

const (
	EntityBusiness    = "business"
	EntityOpportunity = "opportunity"
	EntityDeal        = "deal"
	EntityBooking     = "booking"
)

var tierOptions = []Option{
	{Value: "1", Label: "Tier 1"},
	{Value: "2", Label: "Tier 2"},
	{Value: "3", Label: "Tier 3"},
}

var businessFields = []FieldDefinition{
	{Key: "name", Label: "Business name", Type: FieldText},
	{Key: "tier", Label: "Tier", Type: FieldSelect, Options: tierOptions},
	{Key: "region", Label: "Region", Type: FieldText},
	{Key: "category.name", Label: "Category", Type: FieldText},
	{Key: "owner.name", Label: "Owner", Type: FieldText},
	{Key: "contactEmail", Label: "Contact email", Type: FieldText},
	{Key: "isFlagged", Label: "Flagged", Type: FieldBoolean},
	{Key: "createdAt", Label: "Created", Type: FieldDate},
	{Key: "updatedAt", Label: "Updated", Type: FieldDate},
}

var opportunityFields = []FieldDefinition{
	{Key: "name", Label: "Opportunity", Type: FieldText},
	{Key: "stage", Label: "Stage", Type: FieldSelect, Options: []Option{
		{Value: "iniciacion", Label: "Initiation"},
		{Value: "reunion", Label: "Meeting"},
		{Value: "propuesta_enviada", Label: "Proposal sent"},
		{Value: "propuesta_aprobada", Label: "Proposal approved"},
		{Value: "won", Label: "Won"},
		{Value: "lost", Label: "Lost"},
	}},
	{Key: "business.name", Label: "Business", Type: FieldText},
	{Key: "business.tier", Label: "Business tier", Type: FieldNumber},
	{Key: "responsible.name", Label: "Responsible", Type: FieldText},
	{Key: "startDate", Label: "Start date", Type: FieldDate},
	{Key: "closeDate", Label: "Close date", Type: FieldDate},
	{Key: "nextActivityDate", Label: "Next activity", Type: FieldDate},
	{Key: "hasBooking", Label: "Has booking", Type: FieldBoolean},
	{Key: "createdAt", Label: "Created", Type: FieldDate},
}

var dealFields = []FieldDefinition{
	{Key: "merchant", Label: "Merchant", Type: FieldText},
	{Key: "status", Label: "Status", Type: FieldSelect, Options: []Option{
		{Value: "pending", Label: "Pending"},
		{Value: "asignado", Label: "Assigned"},
		{Value: "en_progreso", Label: "In progress"},
		{Value: "listo", Label: "Ready"},
		{Value: "publicado", Label: "Published"},
	}},
	{Key: "price", Label: "Price", Type: FieldNumber},
	{Key: "discount", Label: "Discount", Type: FieldNumber},
	{Key: "editor.name", Label: "Editor", Type: FieldText},
	{Key: "bookingRequest.name", Label: "Booking request", Type: FieldText},
	{Key: "bookingRequest.startDate", Label: "Run start", Type: FieldDate},
	{Key: "bookingRequest.endDate", Label: "Run end", Type: FieldDate},
	{Key: "isRecurring", Label: "Recurring", Type: FieldBoolean},
	{Key: "createdAt", Label: "Created", Type: FieldDate},
}

var bookingFields = []FieldDefinition{
	{Key: "name", Label: "Event name", Type: FieldText},
	{Key: "status", Label: "Status", Type: FieldSelect, Options: []Option{
		{Value: "draft", Label: "Draft"},
		{Value: "pending", Label: "Pending"},
		{Value: "approved", Label: "Approved"},
		{Value: "booked", Label: "Booked"},
		{Value: "rejected", Label: "Rejected"},
		{Value: "cancelled", Label: "Cancelled"},
	}},
	{Key: "merchant", Label: "Merchant", Type: FieldText},
	{Key: "category.name", Label: "Category", Type: FieldText},
	{Key: "requester.email", Label: "Requested by", Type: FieldText},
	{Key: "startDate", Label: "Start", Type: FieldDate},
	{Key: "endDate", Label: "End", Type: FieldDate},
	{Key: "guests", Label: "Guests", Type: FieldNumber},
	{Key: "isPaid", Label: "Paid", Type: FieldBoolean},
	{Key: "createdAt", Label: "Created", Type: FieldDate},
}

// Default returns the built-in catalog. The returned map is fresh on every
// call; the field slices are shared and must not be mutated.
func Default() Catalog {
	return Catalog{
		EntityBusiness:    businessFields,
		EntityOpportunity: opportunityFields,
		EntityDeal:        dealFields,
		EntityBooking:     bookingFields,
	}
}
