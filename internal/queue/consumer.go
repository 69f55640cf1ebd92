package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// LogDir is where the consumer appends hallplan.log.
var LogDir = "logs"

// StartHallplanConsumer connects to RabbitMQ, declares the
// hallplan.generated queue (durable) and appends one line per event to
// logs/hallplan.log.  It reconnects with backoff and never returns.
func StartHallplanConsumer(url string) {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("hallplan-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        if err := consumeLoop(conn); err != nil {
            log.Printf("hallplan-consumer: consume loop ended: %v; reconnecting", err)
        }
        _ = conn.Close()
        time.Sleep(2 * time.Second)
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(20, 0, false); err != nil {
        log.Printf("hallplan-consumer: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(HallplanQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(HallplanQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("hallplan-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // drop without requeue
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
    var ev HallplanGeneratedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(LogDir, 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join(LogDir, "hallplan.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func formatLine(ev HallplanGeneratedEvent) string {
    sessions := make([]string, len(ev.Sessions))
    for i, s := range ev.Sessions {
        sessions[i] = fmt.Sprintf("%s/%d:%d@%d", s.Date, s.SlotNo, s.Students, s.Rooms)
    }
    status := "persisted"
    if !ev.Persisted {
        status = fmt.Sprintf("not persisted (%s)", ev.StoreError)
    }
    return fmt.Sprintf("[%s] Hall plan generated | plan_id=%s | building_id=%d | assignments=%d | sessions=[%s] | %s\n",
        ev.GeneratedAt, ev.PlanID, ev.BuildingID, ev.Assignments, strings.Join(sessions, ","), status)
}
