package boot

import (
	"context"
	"log"
	"time"
	"travelhub/src/common"
	"travelhub/src/config"
	"travelhub/src/db"
	"travelhub/src/lib"
	"travelhub/src/models"
	"travelhub/src/realtime"

	awslib "travelhub/src/lib/aws"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	return db
}

// MaintenanceJobs lists the background jobs the API runs.
func MaintenanceJobs(cfg *config.Config) []lib.Job {
	every := time.Duration(cfg.RatingSyncMinutes) * time.Minute
	if every <= 0 {
		every = 30 * time.Minute
	}
	return []lib.Job{
		{Name: "reconcile-property-ratings", Every: every, Run: func() {
			n, err := common.ReconcilePropertyRatings(db.GetDb())
			if err != nil {
				log.Printf("[ratings] Error reconciling ratings: %s\n", err.Error())
				return
			}
			log.Printf("[ratings] Reconciled %d properties\n", n)
		}},
		{Name: "update-missing-slugs", Every: time.Hour, Run: func() {
			common.UpdateMissingSlugs(db.GetDb())
		}},
	}
}

// InitScheduler registers the maintenance jobs and starts the scheduler.
func InitScheduler(cfg *config.Config) {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	lib.ScheduleJobs(MaintenanceJobs(cfg)...)
	log.Println("Jobs in queue:", len(sched.Jobs()))
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
	}
}

// InitBroadcast starts the hub and connects the external broadcast sources
// that are configured. It returns the publisher handlers should use.
func InitBroadcast(ctx context.Context, cfg *config.Config) (*realtime.Hub, *realtime.Publisher) {
	hub := realtime.NewHub()
	go hub.Run(ctx)

	rdb := lib.GetRedisClient()
	if rdb != nil {
		if err := lib.PingRedis(ctx); err != nil {
			log.Printf("[redis] Broadcast channel unavailable, using local delivery: %s\n", err.Error())
			rdb = nil
		} else {
			hub.SubscribeRedis(ctx, rdb, cfg.Realtime.Channel)
		}
	}
	if cfg.Realtime.SQSQueue != "" {
		awslib.NewSQSConsumer(cfg.Realtime.SQSQueue, hub.ForwardPayload).Listen(ctx)
	}
	pub := realtime.NewPublisher(hub, rdb, lib.GetPusherClient(), cfg.Realtime)
	if rdb == nil && cfg.Realtime.SNSTopic != "" {
		if cfg.Realtime.SQSQueue == "" {
			log.Println("[SNS] Topic configured without a subscribed queue, this instance will not receive its own broadcasts")
		}
		if topic := awslib.NewSNSTopic(cfg.Realtime.SNSTopic); topic != nil {
			pub.WithTopic(topic)
		}
	}
	return hub, pub
}
