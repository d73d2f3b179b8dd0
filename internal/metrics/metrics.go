// Package metrics publishes checkout counters to CloudWatch. Publishing is
// best effort; a metrics failure never fails a request.
package metrics

import (
	"context"
	"log"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/seoulstyle/storefront/internal/aws"
)

const namespace = "Storefront"

// Metric names emitted by the checkout handler.
const (
	CheckoutCompleted  = "CheckoutCompleted"
	CheckoutRolledBack = "CheckoutRolledBack"
	CheckoutFailed     = "CheckoutFailed"
)

// Publisher counts domain events.
type Publisher interface {
	Count(ctx context.Context, name string)
}

// CloudWatchPublisher implements Publisher over the CloudWatch API.
type CloudWatchPublisher struct {
	client aws.CloudWatchAPI
}

func NewCloudWatch(client aws.CloudWatchAPI) *CloudWatchPublisher {
	return &CloudWatchPublisher{client: client}
}

func (p *CloudWatchPublisher) Count(ctx context.Context, name string) {
	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String(name),
				Value:      sdkaws.Float64(1),
				Unit:       cwtypes.StandardUnitCount,
			},
		},
	})
	if err != nil {
		log.Printf("metrics: put %s: %v", name, err)
	}
}

// Noop is used when metrics are disabled or no AWS clients exist.
type Noop struct{}

func (Noop) Count(context.Context, string) {}
