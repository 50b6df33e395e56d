package services

// reportInvalidator is embedded by the CRUD services so every mutation drops
// the cached reports it can affect and notifies connected dashboards.
type reportInvalidator struct {
	cache *ReportCache
	hub   *Hub
}

func (i reportInvalidator) invalidateReports(prefixes ...string) {
	for _, prefix := range prefixes {
		if i.cache != nil {
			i.cache.Invalidate(prefix)
		}
		if i.hub != nil {
			i.hub.NotifyInvalidation(prefix)
		}
	}
}
