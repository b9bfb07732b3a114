package bridge

import (
	wkafka "github.com/ThreeDotsLabs/watermill-kafka/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/logger"
)

// KafkaConfig configures the Kafka publisher used to forward events.
type KafkaConfig struct {
	Brokers  []string `yaml:"brokers"   validate:"required,min=1"`
	ClientID string   `yaml:"client_id"                           default:"cqrskit"`
	Topic    string   `yaml:"topic"                               default:"domain-events"`
}

// NewKafkaPublisher creates a synchronous Kafka publisher. Messages are keyed by
// their partition_key metadata so that events of one aggregate stay ordered.
func NewKafkaPublisher(cfg KafkaConfig, log logger.Logger) (message.Publisher, error) {
	saramaCfg := wkafka.DefaultSaramaSyncPublisherConfig()
	saramaCfg.ClientID = cfg.ClientID

	marshaler := wkafka.NewWithPartitioningMarshaler(func(_ string, msg *message.Message) (string, error) {
		partitionKey := msg.Metadata.Get(MetadataPartitionKey)
		if partitionKey == "" {
			return "", errx.New("partition key is empty", errx.WithDetails(errx.D{"message_uuid": msg.UUID}))
		}
		return partitionKey, nil
	})

	publisher, err := wkafka.NewPublisher(cfg.Brokers, marshaler, saramaCfg, NewLoggerAdapter(log))
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return publisher, nil
}
