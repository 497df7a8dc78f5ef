package models

// NeededItem is a quantity of a supply a campaign asks for. Priority 1 is the
// most urgent; larger numbers are less urgent.
type NeededItem struct {
	ID         int64  `bson:"_id" json:"id"`
	CampaignID int64  `bson:"campaign_id" json:"campaignId"`
	Name       string `bson:"name" json:"name"`
	CategoryID int64  `bson:"category_id,omitempty" json:"categoryId,omitempty"`
	Quantity   int64  `bson:"quantity" json:"quantity"`
	Unit       string `bson:"unit" json:"unit"`
	Priority   int    `bson:"priority" json:"priority"`
}

// NeededItemPatch adjusts a needed item. The owning campaign cannot change.
type NeededItemPatch struct {
	Name       *string `json:"name" validate:"omitempty,max=200" label:"Name"`
	CategoryID *int64  `json:"categoryId" validate:"omitnil,gte=0" label:"Category"`
	Quantity   *int64  `json:"quantity" validate:"omitnil,gt=0" label:"Quantity"`
	Unit       *string `json:"unit" validate:"omitempty,max=50" label:"Unit"`
	Priority   *int    `json:"priority" validate:"omitnil,gte=1,lte=100" label:"Priority"`
}

// Set renders the patch as a field-name keyed update document.
func (p NeededItemPatch) Set() map[string]any {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.CategoryID != nil {
		set["category_id"] = *p.CategoryID
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.Unit != nil {
		set["unit"] = *p.Unit
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	return set
}
