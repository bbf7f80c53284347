package format

import (
	"time"

	"github.com/ggrmusic/ggr-web/pkg/models"
)

// Record builds the outbound spreadsheet row for a validated submission.
func Record(sub models.Submission, at time.Time, ipAddress string) models.OutboundRecord {
	return models.OutboundRecord{
		Timestamp:               at.Format(time.RFC3339),
		Email:                   sub.Email,
		Phone:                   sub.Phone,
		CommunicationFrequency:  CommunicationFrequency(sub.CommunicationFrequency),
		DiscoverySource:         DiscoverySource(sub.DiscoverySource.Key),
		DiscoverySourceOther:    sub.DiscoverySource.Other,
		PreferredPlatform:       PreferredPlatform(sub.PreferredPlatform),
		SatisfactionRating:      sub.SatisfactionRating,
		ContentPreferences:      ContentPreferences(sub.ContentPreferences.Keys),
		ContentPreferencesOther: sub.ContentPreferences.Other,
		WouldShare:              Capitalize(sub.WouldShare),
		ConsentAgreed:           YesNo(sub.ConsentAgreed),
		IPAddress:               ipAddress,
	}
}
