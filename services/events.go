package services

import (
	"log"
	"strconv"

	"taskpro/api/broker"
	"taskpro/api/models"
)

// publishEvent runs after commit; a failure is logged and never undoes the write.
func publishEvent(events broker.Publisher, subject string, eventType broker.EventType, entity, operation string, actorID uint, data interface{}) {
	if events == nil {
		return
	}

	event, err := models.NewEvent(
		string(eventType),
		entity,
		operation,
		strconv.FormatUint(uint64(actorID), 10),
		data,
	)
	if err != nil {
		log.Printf("Failed to build %s event: %v", eventType, err)
		return
	}

	if err := events.Publish(subject, event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
