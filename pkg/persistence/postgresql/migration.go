package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Create trial_apps table
			CREATE TABLE trial_apps (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				mode VARCHAR(50) NOT NULL,
				site JSONB NOT NULL DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_trial_apps_created_at ON trial_apps(created_at);
		`,
		2: `
			-- Create workflows table, nodes are stored inline
			CREATE TABLE workflows (
				id VARCHAR(255) PRIMARY KEY,
				app_id VARCHAR(255) NOT NULL,
				name VARCHAR(255) NOT NULL,
				nodes JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_workflows_app_id ON workflows(app_id);
			CREATE INDEX idx_workflows_created_at ON workflows(created_at);
			CREATE INDEX idx_workflows_nodes ON workflows USING GIN (nodes jsonb_path_ops);
		`,
	}
}
