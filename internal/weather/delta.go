package weather

// Delta is the output of normalizing one source's record: the slice of the
// Snapshot that source owns. Applying a delta never touches fields owned by
// other sources.
type Delta struct {
	Source SourceID

	Current      *CurrentConditions
	ForecastDays []ForecastDay
	TideDays     []TideDay
	Coastal      *CoastalReport
	Shipping     *ShippingForecast
	Image        *ImageUpdate
}

// ImageUpdate replaces one entry of the snapshot's image map.
type ImageUpdate struct {
	ID  ImageID
	Ref ImageRef
}

// apply merges a delta into a cloned snapshot. Only sections the delta
// carries are replaced; everything else persists from the previous snapshot.
func (s *Snapshot) apply(d Delta) {
	if d.Current != nil {
		s.Current = d.Current
	}
	if d.ForecastDays != nil {
		s.ForecastDays = d.ForecastDays
	}
	if d.TideDays != nil {
		s.TideDays = d.TideDays
	}
	if d.Coastal != nil {
		s.Coastal = d.Coastal
	}
	if d.Shipping != nil {
		s.Shipping = d.Shipping
	}
	if d.Image != nil {
		s.Images[d.Image.ID] = d.Image.Ref
	}
}
