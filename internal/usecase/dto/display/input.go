package displaydto

type TurnOnInput struct {
	AdvertiserID string
	BusinessID   string
	CouponID     string
}

type TurnOffInput struct {
	AdvertiserID string
	CouponID     string
	SlotID       string
}
