package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	HostsCollection      *mongo.Collection
	ListingsCollection   *mongo.Collection
	BookingsCollection   *mongo.Collection
	ReviewsCollection    *mongo.Collection
	WalletTxnsCollection *mongo.Collection
	MessagesCollection   *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("bookifydb")
	UserCollection = database.Collection("users")
	HostsCollection = database.Collection("hosts")
	ListingsCollection = database.Collection("listings")
	BookingsCollection = database.Collection("bookings")
	ReviewsCollection = database.Collection("reviews")
	WalletTxnsCollection = database.Collection("wallet_txns")
	MessagesCollection = database.Collection("messages")
}
