package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.0xdad.com/tblyler/followup/config"
	"git.0xdad.com/tblyler/followup/db"
	"git.0xdad.com/tblyler/followup/logging"
	"git.0xdad.com/tblyler/followup/notify"
	"git.0xdad.com/tblyler/followup/reminder"
	"github.com/rs/zerolog"
)

func errLog(messages ...interface{}) {
	fmt.Fprintln(os.Stderr, messages...)
}

func help() {
	fmt.Fprint(os.Stderr, `usage: followup <command>

commands:
    run                 check reminders on the configured interval until interrupted
    check               fire every due reminder once and exit
    reminder add        add a reminder
    reminder edit       edit a reminder
    reminder remove     remove a reminder
    reminder list       list reminders, earliest first

environment:
    FOLLOWUP_CONFIG          optional YAML config file
    FOLLOWUP_STORAGE_DRIVER  badger (default), sqlite or file
    FOLLOWUP_STORAGE_PATH    database path
    FOLLOWUP_POLL_INTERVAL   due check interval (default 30s)
    FOLLOWUP_TIMEZONE        timezone reminders are entered in (default Local)
    FOLLOWUP_LOG_LEVEL       log level (default info)
    PUSHOVER_API_TOKEN       pushover application token
    PUSHOVER_USER_KEY        pushover user key
    PUSHOVER_DEVICE          pushover device name (default all devices)
`)
}

func newNotifier(cfg config.Config, log zerolog.Logger) *notify.Pushover {
	token, err := cfg.PushoverAPIToken()
	if err != nil {
		log.Debug().Err(err).Msg("pushover disabled")
		token = ""
	}

	userKey, err := cfg.PushoverUserKey()
	if err != nil {
		log.Debug().Err(err).Msg("pushover disabled")
		userKey = ""
	}

	return notify.NewPushover(notify.PushoverConfig{
		APIToken:      token,
		UserKey:       userKey,
		Device:        cfg.PushoverDevice(),
		RatePerSecond: cfg.PushoverRatePerSecond(),
	}, log.With().Str("component", "pushover").Logger())
}

func run(s *reminder.Scheduler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := s.Start(ctx)
	if err != nil {
		return err
	}

	<-ctx.Done()
	s.Stop()

	return nil
}

func check(s *reminder.Scheduler, log zerolog.Logger) {
	ctx := context.Background()

	s.Init(ctx)
	s.Load(ctx)

	fired := s.Tick(ctx)
	log.Info().Int("fired", fired).Msg("check complete")
}

func main() {
	lenArgs := len(os.Args)
	if lenArgs <= 1 {
		help()
		errLog("must supply at least one argument")
		os.Exit(1)
	}

	err := func() error {
		inputScanner := bufio.NewScanner(os.Stdin)

		cfg, err := config.Load("")
		if err != nil {
			return err
		}

		log := logging.New(os.Stderr, cfg.LogLevel())

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		storagePath, err := cfg.StoragePath()
		if err != nil {
			return err
		}

		kv, err := db.Open(cfg.StorageDriver(), storagePath, log.With().Str("component", "db").Logger())
		if err != nil {
			return err
		}

		defer kv.Close()

		scheduler := reminder.NewScheduler(reminder.NewKVStore(kv), reminder.Options{
			Notifier:     newNotifier(cfg, log),
			Acknowledger: notify.NewConsole(os.Stdout),
			Logger:       log.With().Str("component", "scheduler").Logger(),
			Interval:     cfg.PollInterval(),
			Location:     loc,
		})

		switch os.Args[1] {
		case "run":
			return run(scheduler)

		case "check":
			check(scheduler, log)

		case "reminder":
			if lenArgs < 3 {
				return errors.New("must supply an argument to the reminder command")
			}

			ctx := context.Background()
			scheduler.Load(ctx)

			p := &prompter{scanner: inputScanner, loc: loc}

			switch os.Args[2] {
			case "add":
				fields, err := p.fields(nil)
				if err != nil {
					return err
				}

				r, err := scheduler.Add(ctx, fields)
				if err != nil {
					return fmt.Errorf("failed to add reminder %q: %w", fields.Title, err)
				}

				fmt.Println("created reminder id", r.ID)

			case "edit":
				id, err := p.id()
				if err != nil {
					return err
				}

				current := scheduler.Get(id)
				if current == nil {
					return fmt.Errorf("reminder %s doesn't exist", id)
				}

				fields, err := p.fields(current)
				if err != nil {
					return err
				}

				if _, err = scheduler.Edit(ctx, id, fields); err != nil {
					return fmt.Errorf("failed to edit reminder %s: %w", id, err)
				}

				if note := rescheduleNote(current, fields, time.Now()); note != "" {
					fmt.Println(note)
				}

				fmt.Println("updated reminder id", id)

			case "remove":
				id, err := p.id()
				if err != nil {
					return err
				}

				if !scheduler.Remove(ctx, id) {
					return fmt.Errorf("reminder %s doesn't exist", id)
				}

				fmt.Println("removed reminder id", id)

			case "list":
				printList(os.Stdout, scheduler.List(), time.Now(), loc)

			default:
				return fmt.Errorf("unknown reminder command %s", os.Args[2])
			}

		default:
			help()
			return fmt.Errorf("unknown command %s", os.Args[1])
		}

		return nil
	}()

	if err != nil {
		errLog(err.Error())
		os.Exit(1)
	}
}
