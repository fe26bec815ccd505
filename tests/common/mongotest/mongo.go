//go:build e2e

package mongotest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"equipment-reservation/internal/infra/docstore"
	"equipment-reservation/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoImage = "mongo:7.0"
	mongoPort  = nat.Port("27017/tcp")
	replicaSet = "rs0"
)

// one single-node replica set per test binary; transactions need a replica set
var (
	rsOnce      sync.Once
	rsContainer testcontainers.Container
	rsErr       error
)

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   config.MongoConfig
}

// NewMongoHelper connects to a fresh database with indexes in place. The database is
// dropped when the test finishes.
func NewMongoHelper(t *testing.T) *MongoHelper {
	t.Helper()

	cfg := config.MongoConfig{
		URI:            replicaSetURI(t),
		Database:       "test_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
	}

	client, db, closeClient, err := docstore.Connect(cfg)
	require.NoError(t, err, "failed to connect to mongo")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, docstore.EnsureIndexes(ctx, db), "failed to create indexes")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop %s: %v", cfg.Database, err)
		}
		closeClient()
	})

	return &MongoHelper{Client: client, Database: db, Config: cfg}
}

// CleanDatabase empties every collection but keeps the indexes.
func (m *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	names, err := m.Database.ListCollectionNames(ctx, bson.M{})
	require.NoError(t, err, "failed to list collections")
	for _, name := range names {
		_, err := m.Database.Collection(name).DeleteMany(ctx, bson.M{})
		require.NoError(t, err, "failed to clean collection %s", name)
	}
}

func (m *MongoHelper) CountDocuments(t *testing.T, collection string, filter bson.M) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := m.Database.Collection(collection).CountDocuments(ctx, filter)
	require.NoError(t, err, "failed to count documents in %s", collection)
	return count
}

func replicaSetURI(t *testing.T) string {
	t.Helper()

	rsOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		rsContainer, rsErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        mongoImage,
				ExposedPorts: []string{string(mongoPort)},
				Cmd:          []string{"--replSet", replicaSet, "--bind_ip_all"},
				WaitingFor: wait.ForAll(
					wait.ForLog("Waiting for connections"),
					wait.ForListeningPort(mongoPort),
				).WithDeadline(time.Minute),
				Labels: map[string]string{"purpose": "equipment-reservation-docstore"},
			},
			Started: true,
		})
		if rsErr != nil {
			return
		}
		rsErr = initiateReplicaSet(ctx, rsContainer)
	})
	require.NoError(t, rsErr, "failed to start mongo replica set")

	ctx := context.Background()
	host, err := rsContainer.Host(ctx)
	require.NoError(t, err)
	port, err := rsContainer.MappedPort(ctx, mongoPort)
	require.NoError(t, err)

	// the member advertises localhost:27017, which is unreachable from the host side
	return fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port())
}

func initiateReplicaSet(ctx context.Context, c testcontainers.Container) error {
	script := fmt.Sprintf(
		`rs.initiate({_id: %q, members: [{_id: 0, host: "localhost:27017"}]}); while (!db.hello().isWritablePrimary) { sleep(100); }`,
		replicaSet,
	)
	code, out, err := c.Exec(ctx, []string{"mongosh", "--quiet", "--eval", script})
	if err != nil {
		return fmt.Errorf("rs.initiate: %w", err)
	}
	if code != 0 {
		body, _ := io.ReadAll(out)
		return fmt.Errorf("rs.initiate exited with %d: %s", code, body)
	}
	return nil
}
