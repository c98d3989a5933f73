package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"go.uber.org/zap"

	"lexstyle/api/handler"
	"lexstyle/api/router"
	"lexstyle/job"
	"lexstyle/logic/chat"
	"lexstyle/logic/gateway"
	"lexstyle/logic/ingestion"
	"lexstyle/service"
	"lexstyle/storage/es"
	"lexstyle/storage/milvus"
	"lexstyle/storage/postgres"
	"lexstyle/vars"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 1. PG
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		vars.PGHOST, vars.PGUSER, vars.PGPWD, vars.PGDB, vars.PGPORT)
	db, err := postgres.InitDB(dsn)
	if err != nil {
		log.Fatal("postgres init failed", zap.Error(err))
	}
	docRepo := postgres.NewTrainingDocRepo(db)
	profileRepo := postgres.NewStyleProfileRepo(db)
	usageRepo := postgres.NewUsageRepo(db, log)
	clientRepo := postgres.NewClientRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)

	// 2. chat model + completion gateway
	chatModel, err := chat.CreateChatModel(ctx)
	if err != nil {
		log.Fatal("chat model init failed", zap.Error(err))
	}
	gw := gateway.NewClient(chatModel, vars.CHAT_MODEL)

	// 3. embedder + vector / keyword stores
	embedder, err := ingestion.NewEmbedder(ctx)
	if err != nil {
		log.Fatal("embedder init failed", zap.Error(err))
	}
	milvusClient, err := client.NewClient(ctx, client.Config{
		Address: vars.MILVUSADDR,
	})
	if err != nil {
		log.Fatal("milvus connect failed", zap.Error(err))
	}
	indexer, err := milvus.NewClauseIndexerWithClient(ctx, milvusClient, embedder, vars.COLLECTION)
	if err != nil {
		log.Fatal("milvus indexer init failed", zap.Error(err))
	}
	esIndexer, err := es.NewESIndexer([]string{vars.ESADDR}, vars.CLAUSEINDEX)
	if err != nil {
		log.Fatal("es init failed", zap.Error(err))
	}

	// 4. services
	trainingSvc := service.NewTrainingService(docRepo, gw, embedder, indexer, esIndexer, milvusClient, log)
	styleSvc := service.NewStyleService(docRepo, profileRepo, categoryRepo, gw, usageRepo, log)
	draftSvc := service.NewDraftService(clientRepo, categoryRepo, profileRepo, gw, usageRepo, log).
		WithClauseRetrieval(milvusClient, esIndexer.GetClient(), embedder)

	// 5. nightly backfill
	job.StartCronJobs(trainingSvc, log)

	// 6. HTTP
	aiHandler := handler.NewAIHandler(trainingSvc, styleSvc, draftSvc, log)
	r := gin.Default()
	router.RegisterRoutes(r, aiHandler)

	log.Info("server running", zap.String("addr", vars.HTTPADDR))
	if err := r.Run(vars.HTTPADDR); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
