// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/health-mate/auth"
)

// Run with -race: users are created from parallel tests sharing one hash.
func TestCreateTestUserParallel(t *testing.T) {
	for i := 0; i < 4; i++ {
		i := i
		t.Run(fmt.Sprintf("user-%d", i), func(t *testing.T) {
			t.Parallel()

			conn := SetupTestDB(t)
			email := fmt.Sprintf("user%d@example.com", i)
			userID := CreateTestUser(t, conn, "User", email, "user")

			var hash string
			require.NoError(t, conn.QueryRow(`SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash))
			require.NoError(t, auth.CheckPassword(hash, TestPassword))
		})
	}
}
